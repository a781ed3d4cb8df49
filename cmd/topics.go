package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindscope/internal/questionbank"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the built-in assessment topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)

		bank := questionbank.Default()
		if p := v.GetString("bank"); p != "" {
			var err error
			if bank, err = questionbank.LoadFile(p); err != nil {
				return fmt.Errorf("load question bank: %w", err)
			}
		}

		topics := bank.Topics()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(topics)
		}

		for _, t := range topics {
			fmt.Println(t.Title)
			if t.Description != "" {
				fmt.Println("  " + t.Description)
			}
		}
		fmt.Println(strings.Repeat("─", 40))
		fmt.Println("Any other topic uses the general question set.")
		return nil
	},
}

func init() {
	topicsCmd.Flags().Bool("json", false, "Print topics as JSON")
}
