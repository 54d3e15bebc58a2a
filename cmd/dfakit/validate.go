package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fsmlab/dfakit/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an automaton definition for consistency",
	Long:  `Decodes the document, checks every structural invariant and reports completeness warnings (missing transitions, no final states).`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		a, err := cli.LoadAutomaton(args[0])
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		warned := false
		if missing := a.MissingTransitions(); len(missing) > 0 {
			warned = true
			fmt.Printf("Warning: %d missing transition(s):\n", len(missing))
			for _, k := range missing {
				fmt.Printf("  (%s, %s)\n", k.State, k.Symbol)
			}
		}
		if len(a.Finals()) == 0 {
			warned = true
			fmt.Println("Warning: no final states; every input will be rejected")
		}

		if warned && strict {
			os.Exit(2)
		}
		fmt.Println("Definition is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Fail on completeness warnings, not just invariant violations")
}
