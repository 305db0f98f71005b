package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a rule set without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := loadGrammar(rulesPath)
			if err != nil {
				return err
			}
			fmt.Printf("ok: %d rules\n", grammar.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to the JSON rule set")
	cmd.MarkFlagRequired("rules")

	return cmd
}
