package ops

import (
	"context"

	"github.com/jdelaire/calcbot/core/calc"
)

// AverageSpeedOp computes distance / time.
type AverageSpeedOp struct{}

func (o *AverageSpeedOp) Name() string        { return "vm" }
func (o *AverageSpeedOp) Description() string { return "Average speed: /vm distancia_km tempo_h" }

func (o *AverageSpeedOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 2)
	if !ok {
		return "Use assim: /vm distancia_km tempo_h  (ex: /vm 100 2)", nil
	}
	if err != nil {
		return "Valores inválidos. Exemplo: /vm 120 1.5", nil
	}
	distance, hours := v[0], v[1]
	if hours == 0 {
		return "O tempo não pode ser 0, né 😅", nil
	}
	return "Velocidade média = " + calc.FormatFixed(distance/hours, 2) + " km/h", nil
}

// DistanceOp computes speed * time.
type DistanceOp struct{}

func (o *DistanceOp) Name() string        { return "dist" }
func (o *DistanceOp) Description() string { return "Distance travelled: /dist velocidade_kmh tempo_h" }

func (o *DistanceOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 2)
	if !ok {
		return "Use assim: /dist velocidade_kmh tempo_h  (ex: /dist 80 2)", nil
	}
	if err != nil {
		return "Valores inválidos. Exemplo: /dist 90 2.5", nil
	}
	return "Distância percorrida = " + calc.FormatFixed(v[0]*v[1], 2) + " km", nil
}

// TravelTimeOp computes distance / speed.
type TravelTimeOp struct{}

func (o *TravelTimeOp) Name() string { return "tviagem" }
func (o *TravelTimeOp) Description() string {
	return "Travel time: /tviagem distancia_km velocidade_kmh"
}

func (o *TravelTimeOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 2)
	if !ok {
		return "Use assim: /tviagem distancia_km velocidade_kmh  (ex: /tviagem 150 100)", nil
	}
	if err != nil {
		return "Valores inválidos. Exemplo: /tviagem 200 80", nil
	}
	distance, speed := v[0], v[1]
	if speed == 0 {
		return "Velocidade 0 não rola, né 😅", nil
	}
	return "Tempo de viagem ≈ " + calc.FormatFixed(distance/speed, 2) + " h", nil
}
