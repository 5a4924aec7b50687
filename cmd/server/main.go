// Package main is the entry point for the wasteland-api server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wasteland-api",
	Short: "Wasteland tabletop RPG session server",
	Long:  `wasteland-api runs tabletop RPG sessions over a chat transport: character creation wizards, dice resolution with a shared resource economy, and combat turn tracking.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
