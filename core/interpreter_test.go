package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/jdelaire/calcbot/core/ops"
)

type failingOp struct{}

func (f *failingOp) Name() string        { return "fail" }
func (f *failingOp) Description() string { return "always fails" }
func (f *failingOp) Execute(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("something broke")
}

func newTestInterpreter() *Interpreter {
	return NewInterpreter(ops.Builtin())
}

func TestInterpretCommands(t *testing.T) {
	in := newTestInterpreter()
	tests := []struct {
		text    string
		command string
		want    string
	}{
		{"/vm 100 2", "vm", "Velocidade média = 50.00 km/h"},
		{"/VM 100 2", "vm", "Velocidade média = 50.00 km/h"},
		{"  /vm   100   2  ", "vm", "Velocidade média = 50.00 km/h"},
		{"/vm\t100\t2", "vm", "Velocidade média = 50.00 km/h"},
		{"/vm@CalcBot 100 2", "vm", "Velocidade média = 50.00 km/h"},
		{"/vm 100 0", "vm", "O tempo não pode ser 0, né 😅"},
		{"/tviagem 100 0", "tviagem", "Velocidade 0 não rola, né 😅"},
		{"/dist 80 2", "dist", "Distância percorrida = 160.00 km"},
		{"/km 10", "km", "10.0 km = 10000.0 m"},
		{"/temp 0", "temp", "0.0 °C = 32.0 °F"},
		{"/temp 100", "temp", "100.0 °C = 212.0 °F"},
		{"/horas 1,5", "horas", "1.5 horas = 90.0 minutos"},
		{"/start", "start", ops.HelpText},
		{"/help", "help", ops.HelpText},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := in.Interpret(context.Background(), tt.text)
			if got.Text != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.text, got.Text, tt.want)
			}
			if got.Command != tt.command {
				t.Errorf("Interpret(%q) command = %q, want %q", tt.text, got.Command, tt.command)
			}
		})
	}
}

func TestInterpretArithmeticFallback(t *testing.T) {
	in := newTestInterpreter()
	tests := []struct {
		text    string
		command string
		want    string
	}{
		{"2+2", CommandCalc, "Resultado: 4"},
		{"(5+7)/2", CommandCalc, "Resultado: 6.0"},
		{"10*3", CommandCalc, "Resultado: 30"},
		{" 2 ** 8 ", CommandCalc, "Resultado: 256"},
		{"hello world", CommandUnknown, FallbackText},
		{"1/0", CommandUnknown, FallbackText},
		{"__import__('os').system('id')", CommandUnknown, FallbackText},
		{"/unknown 1 2", CommandUnknown, FallbackText},
		{"/", CommandUnknown, FallbackText},
		{"", CommandUnknown, FallbackText},
		{"   ", CommandUnknown, FallbackText},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := in.Interpret(context.Background(), tt.text)
			if got.Text != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.text, got.Text, tt.want)
			}
			if got.Command != tt.command {
				t.Errorf("Interpret(%q) command = %q, want %q", tt.text, got.Command, tt.command)
			}
		})
	}
}

func TestInterpretIdempotent(t *testing.T) {
	in := newTestInterpreter()
	for _, text := range []string{"/vm 100 2", "/km 3", "2+2", "hello", "/help"} {
		first := in.Interpret(context.Background(), text)
		second := in.Interpret(context.Background(), text)
		if first != second {
			t.Errorf("Interpret(%q) not idempotent: %+v then %+v", text, first, second)
		}
	}
}

func TestInterpretOpError(t *testing.T) {
	reg := ops.NewRegistry()
	reg.Register(&failingOp{})
	in := NewInterpreter(reg)

	got := in.Interpret(context.Background(), "/fail")
	if got.Command != "fail" {
		t.Errorf("command = %q, want fail", got.Command)
	}
	if got.Text != "Erro ao executar /fail: something broke" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		cmd   string
		args  string
	}{
		{"/vm", "vm", ""},
		{"/vm 100 2", "vm", "100 2"},
		{"/VM@bot 1 2", "vm", "1 2"},
		{"/km\n5", "km", "5"},
		{"2+2", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		cmd, args := parseCommand(tt.input)
		if cmd != tt.cmd || args != tt.args {
			t.Errorf("parseCommand(%q) = (%q, %q), want (%q, %q)", tt.input, cmd, args, tt.cmd, tt.args)
		}
	}
}
