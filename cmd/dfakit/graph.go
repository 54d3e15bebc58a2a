package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fsmlab/dfakit/internal/cli"
	"github.com/fsmlab/dfakit/internal/presentation/graph"
	"github.com/fsmlab/dfakit/pkg/automaton"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the automaton visualization",
	Long:  `Outputs a Mermaid (default) or Graphviz DOT diagram of the automaton. With --input, the states visited by that run are highlighted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		input, _ := cmd.Flags().GetString("input")

		a, err := cli.LoadAutomaton(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("input") {
			res := a.Trace(automaton.SplitInput(input))
			overlay = &graph.Overlay{
				VisitedStates: res.Path(),
				CurrentState:  res.Final(),
			}
		}

		switch format {
		case "mermaid":
			fmt.Print(graph.GenerateMermaid(a, overlay))
		case "dot":
			fmt.Print(graph.GenerateDOT(a, overlay))
		default:
			fmt.Printf("Error: unknown format %q (want mermaid or dot)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().StringP("input", "i", "", "Highlight the states visited by this input")
}
