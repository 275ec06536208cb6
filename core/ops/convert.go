package ops

import (
	"context"
	"fmt"

	"github.com/jdelaire/calcbot/core/calc"
)

// KmOp converts kilometres to metres.
type KmOp struct{}

func (o *KmOp) Name() string        { return "km" }
func (o *KmOp) Description() string { return "Convert km to m: /km valor" }

func (o *KmOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 1)
	if !ok {
		return "Use assim: /km valor  (ex: /km 10)", nil
	}
	if err != nil {
		return "Valor inválido. Tente algo como: /km 5", nil
	}
	km := v[0]
	return fmt.Sprintf("%s km = %s m", calc.FormatFloat(km), calc.FormatFloat(km*1000)), nil
}

// TempOp converts Celsius to Fahrenheit.
type TempOp struct{}

func (o *TempOp) Name() string        { return "temp" }
func (o *TempOp) Description() string { return "Convert °C to °F: /temp valor_em_C" }

func (o *TempOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 1)
	if !ok {
		return "Use assim: /temp valor_em_C  (ex: /temp 30)", nil
	}
	if err != nil {
		return "Valor inválido. Tente algo como: /temp 25", nil
	}
	celsius := v[0]
	fahrenheit := celsius*9/5 + 32
	return fmt.Sprintf("%s °C = %s °F", calc.FormatFloat(celsius), calc.FormatFixed(fahrenheit, 1)), nil
}

// HoursOp converts hours to minutes.
type HoursOp struct{}

func (o *HoursOp) Name() string        { return "horas" }
func (o *HoursOp) Description() string { return "Convert hours to minutes: /horas valor" }

func (o *HoursOp) Execute(_ context.Context, args string) (string, error) {
	v, ok, err := parseArgs(args, 1)
	if !ok {
		return "Use assim: /horas valor  (ex: /horas 2)", nil
	}
	if err != nil {
		return "Valor inválido. Tente algo como: /horas 1.5", nil
	}
	hours := v[0]
	return fmt.Sprintf("%s horas = %s minutos", calc.FormatFloat(hours), calc.FormatFloat(hours*60)), nil
}
