package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindscope/internal/llm"
	"github.com/abhisek/mindscope/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		session, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose, SessionID: session})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-26s  %-6s  %-6s  %-7s  %-2s  %s\n",
			"Seq", "Timestamp", "Provider", "Model", "In", "Out", "Ms", "OK", "Session")
		fmt.Println(strings.Repeat("─", 110))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 26 {
				model = model[:26]
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-26s  %-6d  %-6d  %-7d  %-2s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Provider,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
				e.SessionID,
			)
			if !e.Success && e.ErrorMessage != "" {
				fmt.Printf("       error: %s\n", e.ErrorMessage)
			}
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		printUsage(stats)
		return nil
	},
}

func printUsage(stats []store.LLMUsage) {
	sep := strings.Repeat("─", 100)
	fmt.Println("Usage by Purpose and Model")
	fmt.Println(sep)
	fmt.Printf("%-20s  %-26s  %6s  %6s  %10s  %10s  %8s  %10s\n",
		"Purpose", "Model", "Calls", "Failed", "Input", "Output", "Avg Ms", "Est. Cost")
	fmt.Println(sep)

	var totalCalls, totalFailed, totalIn, totalOut int
	var totalCost float64
	unpriced := false
	for _, st := range stats {
		cost := "n/a"
		if c := llm.LookupCost(st.Model); c != nil {
			usd := c.Cost(st.InputTokens, st.OutputTokens)
			totalCost += usd
			cost = fmt.Sprintf("$%.4f", usd)
		} else {
			unpriced = true
		}
		fmt.Printf("%-20s  %-26s  %6d  %6d  %10d  %10d  %8.0f  %10s\n",
			st.Purpose, st.Model, st.Requests, st.Failures, st.InputTokens, st.OutputTokens, st.AvgLatencyMs, cost)
		totalCalls += st.Requests
		totalFailed += st.Failures
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Println(sep)
	fmt.Printf("%-20s  %-26s  %6d  %6d  %10d  %10d  %8s  %10s\n",
		"TOTAL", "", totalCalls, totalFailed, totalIn, totalOut, "", fmt.Sprintf("$%.4f", totalCost))
	if unpriced {
		fmt.Println("\nModels without a price entry are excluded from the cost total.")
	}
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded LLM requests older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive, got %s", age)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().PruneLLMEvents(cmd.Context(), time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d LLM events.\n", n)
		return nil
	},
}

// openStore opens the event store at the resolved database path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(viperForCmd(cmd))
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose")
	llmListCmd.Flags().String("session", "", "Filter by assessment session id")

	llmCmd.AddCommand(llmListCmd)
	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete events recorded before this age")

	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmPruneCmd)
}
