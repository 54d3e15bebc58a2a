package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fsmlab/dfakit/internal/cli"
	"github.com/fsmlab/dfakit/internal/presentation/tui"
	"github.com/fsmlab/dfakit/pkg/automaton"
)

var testCmd = &cobra.Command{
	Use:   "test <file> <input>",
	Short: "Run an input string over an automaton",
	Long:  `Loads the automaton and consumes the input one symbol at a time. Exits 0 on acceptance, 1 on rejection and 2 when the run halts on an undefined transition or a foreign symbol.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := cli.LoadAutomaton(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(2)
		}

		accepted, err := a.Accepts(automaton.SplitInput(args[1]))
		if err != nil {
			fmt.Printf("Run halted: %v\n", err)
			os.Exit(2)
		}

		fmt.Println(tui.Verdict(accepted))
		if !accepted {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
