package ops

import "context"

// HelpText is the menu sent for /start and /help.
const HelpText = "🤖 Bot do Lucas  aqui!\n\n" +
	"Funções disponíveis:\n" +
	"🧮 Calculadora: envie expressões como 2+2, 10*3, (5+7)/2\n" +
	"📏 Converter km → m: /km valor   (ex: /km 10)\n" +
	"🌡️ Converter °C → °F: /temp valor   (ex: /temp 30)\n" +
	"⏱️ Converter horas → minutos: /horas valor   (ex: /horas 1.5)\n" +
	"🚗 Velocidade média: /vm distancia_km tempo_h   (ex: /vm 100 2)\n" +
	"📍 Distância: /dist velocidade_kmh tempo_h      (ex: /dist 80 2)\n" +
	"⏳ Tempo de viagem: /tviagem distancia_km velocidade_kmh   (ex: /tviagem 150 100)\n"

// HelpOp replies with the command menu. Cmd selects the name it is
// registered under so the same op can serve both /help and /start.
type HelpOp struct {
	Cmd string
}

func (h *HelpOp) Name() string {
	if h.Cmd == "" {
		return "help"
	}
	return h.Cmd
}

func (h *HelpOp) Description() string { return "List available commands" }

func (h *HelpOp) Execute(_ context.Context, _ string) (string, error) {
	return HelpText, nil
}
