package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fsmlab/dfakit/internal/cli"
	"github.com/fsmlab/dfakit/internal/presentation/tui"
	"github.com/fsmlab/dfakit/pkg/automaton"
)

// traceCmd represents the trace command
var traceCmd = &cobra.Command{
	Use:   "trace <file> <input>",
	Short: "Show the step-by-step run of an input",
	Long:  `Prints every configuration the machine passes through: current state, consumed prefix and remaining suffix. A halted run still shows the steps taken before the halt.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")

		a, err := cli.LoadAutomaton(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(2)
		}

		res := a.Trace(automaton.SplitInput(args[1]))

		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(tui.TracePlain(args[1], res))
		} else {
			render := tui.NewRenderer()
			fmt.Print(render(tui.TraceMarkdown(args[1], res)))
		}

		if res.Err != nil {
			os.Exit(2)
		}
		if !res.Accepted {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Bool("plain", false, "Force plain text output (no markdown rendering)")
}
