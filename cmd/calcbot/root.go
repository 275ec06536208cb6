package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdelaire/calcbot/internal/config"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "calcbot",
		Short:         "Telegram calculator and unit conversion bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if loaded := config.LoadDotEnv(); len(loaded) > 0 {
				slog.Debug("loaded env files", "files", loaded)
			}
			return config.ReadFile(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context(), v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file path (optional).")
	flags.String("log-level", "", "Log level: debug, info, warn, error.")
	flags.String("log-format", "", "Log format: text or json.")
	flags.String("log-file", "", "Write logs to a rotated file instead of stderr.")
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))

	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newTokenCmd())

	return cmd
}
