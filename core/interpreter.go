package core

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jdelaire/calcbot/core/calc"
	"github.com/jdelaire/calcbot/core/ops"
)

// Command labels reported in Reply.Command for text that is not a registered op.
const (
	CommandCalc    = "calc"
	CommandUnknown = "unknown"
)

// FallbackText is sent when a message is neither a command nor an arithmetic expression.
const FallbackText = "Não entendi 🤔\n" +
	"Tente:\n" +
	"• Expressões matemáticas (ex: 2+2, (5+7)/2)\n" +
	"• Ou comandos:\n" +
	"   /km 10\n" +
	"   /temp 30\n" +
	"   /horas 2\n" +
	"   /vm 100 2\n" +
	"   /dist 80 2\n" +
	"   /tviagem 150 100\n" +
	"   /help\n"

// Reply is the interpreter's answer to one message.
type Reply struct {
	Command string
	Text    string
}

// Interpreter maps message text to a reply. It holds no mutable state, so
// the same input always yields the same reply.
type Interpreter struct {
	ops *ops.Registry
}

// NewInterpreter creates an Interpreter that dispatches to the given ops.
func NewInterpreter(opsReg *ops.Registry) *Interpreter {
	return &Interpreter{ops: opsReg}
}

// Interpret dispatches a leading "/command" to its op and evaluates anything
// else as arithmetic, falling back to FallbackText.
func (in *Interpreter) Interpret(ctx context.Context, text string) Reply {
	text = strings.TrimSpace(text)

	if cmd, args := parseCommand(text); cmd != "" {
		if op := in.ops.Get(cmd); op != nil {
			result, err := op.Execute(ctx, args)
			if err != nil {
				return Reply{Command: cmd, Text: fmt.Sprintf("Erro ao executar /%s: %s", cmd, err)}
			}
			return Reply{Command: cmd, Text: result}
		}
	}

	v, err := calc.Eval(text)
	if err != nil {
		return Reply{Command: CommandUnknown, Text: FallbackText}
	}
	return Reply{Command: CommandCalc, Text: "Resultado: " + v.String()}
}

// parseCommand extracts the command name and arguments from a message.
// It handles "/command", "/command args", and "/command@botname args".
func parseCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}

	cmd = text[1:] // strip leading "/"
	if i := strings.IndexFunc(cmd, unicode.IsSpace); i != -1 {
		cmd, args = cmd[:i], strings.TrimSpace(cmd[i:])
	}

	// Strip @botname suffix.
	if at := strings.Index(cmd, "@"); at != -1 {
		cmd = cmd[:at]
	}

	cmd = strings.ToLower(cmd)
	return cmd, args
}
