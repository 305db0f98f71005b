package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clarete/pegvm"
)

func newMatchCmd() *cobra.Command {
	var rulesPath string
	var startRule string
	var outputFormat string
	var trace bool

	cmd := &cobra.Command{
		Use:   "match [input-file]",
		Short: "Match an input against a rule set and print the tokens",
		Long: "Match reads the input from the given file, or from stdin when no " +
			"file is given, runs it through the start rule of a pre-compiled " +
			"rule set and prints the emitted tokens.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := loadGrammar(rulesPath)
			if err != nil {
				return err
			}

			var input []byte
			if len(args) == 1 {
				input, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			} else {
				input, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			var opts []pegvm.ParseOption
			if trace {
				opts = append(opts, pegvm.WithTrace(newTracer()))
			}

			toks, err := grammar.Parse(startRule, string(input), opts...)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "tree":
				fmt.Print(pegvm.FormatTokens(toks))
			case "json":
				entries := make([]tokenJSON, 0, toks.Len())
				for it := toks.Iter(); ; {
					tok, ok := it.Next()
					if !ok {
						break
					}
					entries = append(entries, tokenJSON{
						Rule:  tok.Rule,
						Start: tok.Range.Start,
						End:   tok.Range.End,
						Text:  tok.Range.Str(string(input)),
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("encode tokens: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to the JSON rule set")
	cmd.Flags().StringVar(&startRule, "rule", "start", "Name of the start rule")
	cmd.Flags().StringVar(&outputFormat, "format", "tree", "Output format: tree or json")
	cmd.Flags().BoolVar(&trace, "trace", false, "Log every rule entry and exit")
	cmd.MarkFlagRequired("rules")

	return cmd
}

type tokenJSON struct {
	Rule  string `json:"rule"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

func loadGrammar(path string) (*pegvm.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	rules, err := pegvm.DecodeRules(data)
	if err != nil {
		return nil, err
	}
	grammar, err := pegvm.NewGrammar(rules)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return grammar, nil
}

func newTracer() pegvm.TraceFunc {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.DebugLevel)

	return func(e pegvm.TraceEvent) {
		entry := log.WithFields(logrus.Fields{
			"rule":   e.Rule,
			"offset": e.Offset,
			"depth":  e.Depth,
		})
		switch {
		case e.Enter:
			entry.Debug("enter")
		case e.Matched:
			entry.Debug("match")
		default:
			entry.Debug("fail")
		}
	}
}
