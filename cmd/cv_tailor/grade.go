package main

import (
	"fmt"
	"os"

	"github.com/jonathan/cv-tailor/internal/grading"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/spf13/cobra"
)

var gradeCommand = &cobra.Command{
	Use:   "grade",
	Short: "Grade an existing document without running the pipeline",
	Long:  "Scores a plain-text CV against a job context and the candidate's achievement corpus on the five fixed quality dimensions. No generation calls are made.",
	RunE:  gradeCmd,
}

var (
	gradeDocument   string
	gradeDataPath   string
	gradeJobContext string
)

func init() {
	gradeCommand.Flags().StringVarP(&gradeDocument, "document", "f", "", "Path to the plain-text CV to grade (required)")
	gradeCommand.Flags().StringVarP(&gradeDataPath, "data", "d", "", "Directory holding profile.json and role files (required)")
	gradeCommand.Flags().StringVarP(&gradeJobContext, "job-context", "j", "", "Path to the job context JSON (required)")
	_ = gradeCommand.MarkFlagRequired("document")
	_ = gradeCommand.MarkFlagRequired("data")
	_ = gradeCommand.MarkFlagRequired("job-context")

	rootCmd.AddCommand(gradeCommand)
}

func gradeCmd(_ *cobra.Command, _ []string) error {
	document, err := os.ReadFile(gradeDocument)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	profile, err := roles.Load(gradeDataPath)
	if err != nil {
		return fmt.Errorf("failed to load role data: %w", err)
	}
	jobCtx, err := roles.LoadJobContext(gradeJobContext)
	if err != nil {
		return fmt.Errorf("failed to load job context: %w", err)
	}

	var corpus []string
	for _, role := range profile.Roles {
		corpus = append(corpus, role.Achievements...)
	}

	result := grading.Grade(string(document), jobCtx, corpus)
	observability.NewPrinter(os.Stdout).PrintGrade(result)

	if !result.Passed {
		os.Exit(1)
	}
	return nil
}
