package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stepcheck/internal/grammar"
)

func newGrammarCmd() *cobra.Command {
	var verify, list bool
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the accepted ISO 10303-21 grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !verify && !list {
				_, err := fmt.Fprint(out, grammar.Source())
				return err
			}
			if verify {
				if err := grammar.Verify(); err != nil {
					return err
				}
				fmt.Fprintf(out, "grammar ok (start %s)\n", grammar.Start)
			}
			if list {
				g, err := grammar.Load()
				if err != nil {
					return err
				}
				for _, p := range grammar.Productions(g) {
					kind := "syntax"
					if p.Lexical {
						kind = "lexical"
					}
					fmt.Fprintf(out, "%-14s %s\n", p.Name, kind)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "check that every production is defined and reachable")
	cmd.Flags().BoolVar(&list, "productions", false, "list production names")
	return cmd
}
