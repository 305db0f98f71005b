package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pegvm",
		Short: "Run pre-compiled PEG grammars against inputs",
	}

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newUnescapeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
