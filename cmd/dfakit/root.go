package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfakit",
	Short: "dfakit is a deterministic finite automaton toolkit",
	Long:  `dfakit validates, simulates and visualizes deterministic finite automata defined as JSON or YAML documents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
