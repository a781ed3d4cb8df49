package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindscope/internal/app"
	"github.com/abhisek/mindscope/internal/logging"
)

var takeCmd = &cobra.Command{
	Use:   "take [topic]",
	Short: "Take an assessment in the terminal",
	Long: "Launch the interactive assessment. With a topic argument the home menu is\n" +
		"skipped; topics outside the built-in list use the general question set.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := ""
		if len(args) == 1 {
			topic = args[0]
		}
		return runTake(cmd, topic)
	},
}

// runTake builds dependencies and launches the TUI. Logs go to a file next
// to the database so they do not disturb the alternate screen.
func runTake(cmd *cobra.Command, topic string) error {
	v := viperForCmd(cmd)

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	logFile, err := logging.OpenFile(filepath.Join(filepath.Dir(dbPath), "mindscope.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := setupLogging(v, logFile); err != nil {
		return err
	}

	d, err := buildDeps(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Bank:     d.bank,
		Resolver: d.arbiter,
		Count:    v.GetInt("count"),
		Mode:     d.mode(),
		Notice:   d.notice(),
		Topic:    topic,
	})
}
