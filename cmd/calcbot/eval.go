package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelaire/calcbot/core"
	"github.com/jdelaire/calcbot/core/ops"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <text...>",
		Short: "Print the bot's reply to a message without contacting Telegram",
		Example: "  calcbot eval '(5+7)/2'\n" +
			"  calcbot eval /km 10\n" +
			"  calcbot eval -- -3+1",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interp := core.NewInterpreter(ops.Builtin())
			reply := interp.Interpret(cmd.Context(), strings.Join(args, " "))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return err
		},
	}
}
