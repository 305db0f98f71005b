package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clarete/pegvm"
)

func newUnescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape <literal>",
		Short: "Decode a grammar literal's escape syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := pegvm.Unescape(args[0])
			if err != nil {
				return fmt.Errorf("unescape: %w", err)
			}
			fmt.Printf("%q\n", text)
			return nil
		},
	}
}
