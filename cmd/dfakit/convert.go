package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fsmlab/dfakit/internal/cli"
	"github.com/fsmlab/dfakit/pkg/automaton"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert an automaton definition between JSON and YAML",
	Long:  `Reads a JSON or YAML definition, validates it and writes the canonical form in the requested output format to stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		to, _ := cmd.Flags().GetString("to")

		a, err := cli.LoadAutomaton(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		switch to {
		case "json":
			data, err := automaton.Encode(a)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		case "yaml":
			doc, err := automaton.NewDocument(a)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			data, err := yaml.Marshal(doc)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(data))
		default:
			fmt.Printf("Error: unknown output format %q (want json or yaml)\n", to)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "json", "Output format: json or yaml")
}
