package ops_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jdelaire/calcbot/core/ops"
)

func TestHelpOutput(t *testing.T) {
	op := &ops.HelpOp{}
	result, err := op.Execute(context.Background(), "")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, cmd := range []string{"/km", "/temp", "/horas", "/vm", "/dist", "/tviagem", "2+2"} {
		if !strings.Contains(result, cmd) {
			t.Errorf("missing %s in help output: %q", cmd, result)
		}
	}
}

func TestHelpName(t *testing.T) {
	if got := (&ops.HelpOp{}).Name(); got != "help" {
		t.Errorf("name = %q, want help", got)
	}
	if got := (&ops.HelpOp{Cmd: "start"}).Name(); got != "start" {
		t.Errorf("name = %q, want start", got)
	}
}

func TestBuiltinRegistersAllCommands(t *testing.T) {
	reg := ops.Builtin()
	for _, name := range []string{"vm", "dist", "tviagem", "km", "temp", "horas", "help", "start"} {
		if reg.Get(name) == nil {
			t.Errorf("builtin registry missing %q", name)
		}
	}
	if n := len(reg.List()); n != 8 {
		t.Errorf("builtin registry has %d ops, want 8", n)
	}
}

type opCase struct {
	name string
	args string
	want string
}

func runOpCases(t *testing.T, op ops.Op, cases []opCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := op.Execute(context.Background(), tc.args)
			if err != nil {
				t.Fatalf("execute %q: %v", tc.args, err)
			}
			if got != tc.want {
				t.Errorf("/%s %s = %q, want %q", op.Name(), tc.args, got, tc.want)
			}
		})
	}
}
