package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/logging"
	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindscope",
	Short: "Psychological self-assessment in the terminal",
	Long: "MindScope: answer a short questionnaire and get a multi-dimensional report.\n" +
		"Reports come from a generative model when one is configured, otherwise\n" +
		"from the built-in local engine.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("db", "", "Path to SQLite database file (overrides MINDSCOPE_DB env var)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.Duration("timeout", arbiter.DefaultTimeout, "How long to wait for the remote report before using the local one")
	f.String("catalog", "", "YAML file replacing the built-in report catalog")
	f.String("bank", "", "YAML file replacing the built-in question bank")
	f.Int("count", questionbank.DefaultCount, "Questions per assessment")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MINDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mindscope")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mindscope")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// setupLogging configures the default logger from the log flags. A nil
// writer means stderr.
func setupLogging(v *viper.Viper, w io.Writer) error {
	level, err := logging.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logging.Init(level, strings.ToLower(v.GetString("log-format")), w)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINDSCOPE_DB env var, then the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func timeoutFrom(v *viper.Viper) (time.Duration, error) {
	d := v.GetDuration("timeout")
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", v.GetString("timeout"))
	}
	return d, nil
}
