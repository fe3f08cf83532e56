// Package main provides the entry point for the talent onboarding engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_agent",
	Short: "Talent Onboarding Dialogue Engine",
	Long:  "Talent onboarding engine: a conversational flow that builds a structured candidate profile from free-text answers, choices, and an optional CV, exposed over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
