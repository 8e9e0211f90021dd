// Package main provides the entry point for the cv_tailor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_tailor",
	Short: "CV tailoring pipeline",
	Long:  "cv_tailor generates a fact-grounded, job-tailored CV from a candidate's role records and a parsed job context, with rule-based hallucination and keyword checks at every stage.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
