package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full CV generation pipeline end-to-end",
	Long: `Orchestrates the entire CV generation process: per-role bullet generation (variants or model), narrative validation with bounded correction, fact and keyword checks, stitching, header composition, grading, and a single improvement pass.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runDataPath      string
	runJobContext    string
	runOutput        string
	runTargetBullets int
	runWordBudget    int
	runSkipImprove   bool
	runAPIKey        string
	runVerbose       bool
	runDatabaseURL   string
	runModel         string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runDataPath, "data", "d", "", "Directory holding profile.json and role files")
	runCommand.Flags().StringVarP(&runJobContext, "job-context", "j", "", "Path to the job context JSON produced by JD extraction")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output path for the assembled document (default: stdout)")
	runCommand.Flags().IntVar(&runTargetBullets, "target-bullets", 0, "Bullets to request per role (1-10)")
	runCommand.Flags().IntVar(&runWordBudget, "word-budget", 0, "Total word budget for the experience section (0 = unlimited)")
	runCommand.Flags().BoolVar(&runSkipImprove, "skip-improve", false, "Skip the improvement pass even when the grade fails")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	runCommand.Flags().StringVar(&runModel, "model", "", "Override the standard-tier model used for bullet generation")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("--data is required (or 'data_path' in the config file)")
	}
	if cfg.JobContext == "" {
		return fmt.Errorf("--job-context is required (or 'job_context' in the config file)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required: pass --api-key or set GEMINI_API_KEY")
	}

	profile, err := roles.Load(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load role data: %w", err)
	}
	jobCtx, err := roles.LoadJobContext(cfg.JobContext)
	if err != nil {
		return fmt.Errorf("failed to load job context: %w", err)
	}

	llmConfig := llm.DefaultConfig()
	if runModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, runModel)
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := pipeline.Run(ctx, llm.WithRetry(client, 0), profile, jobCtx, pipeline.RunOptions{
		TargetBullets: cfg.TargetBullets,
		WordBudget:    cfg.WordBudget,
		SkipImprove:   cfg.SkipImprove,
		Verbose:       cfg.Verbose,
		DatabaseURL:   cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(result.DocumentText), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Wrote document to %s\n", cfg.Output)
	} else {
		fmt.Println()
		fmt.Println(result.DocumentText)
	}

	printQualityReport(result)
	return nil
}

// resolveConfig merges the config file, explicit flags, and environment.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if runVerbose {
			fmt.Printf("Loaded config from: %s\n", runConfigPath)
		}
	}

	// Command-line args take priority over config file values.
	if cmd.Flags().Changed("data") {
		cfg.DataPath = runDataPath
	}
	if cmd.Flags().Changed("job-context") {
		cfg.JobContext = runJobContext
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("target-bullets") {
		cfg.TargetBullets = runTargetBullets
	}
	if cmd.Flags().Changed("word-budget") {
		cfg.WordBudget = runWordBudget
	}
	if cmd.Flags().Changed("skip-improve") {
		cfg.SkipImprove = runSkipImprove
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Environment fallbacks
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// printQualityReport summarizes the run the way a reviewer would want to
// read it: grade first, then per-role flags.
func printQualityReport(result *pipeline.Result) {
	fmt.Println()
	fmt.Println("Quality report")
	fmt.Println("==============")
	if result.Grade != nil {
		fmt.Printf("Composite grade: %.2f / %.1f (passed: %v)\n",
			result.Grade.CompositeScore, result.Grade.PassingThreshold, result.Grade.Passed)
		if !result.Grade.Passed {
			fmt.Printf("Weakest dimension: %s\n", result.Grade.LowestDimension)
		}
	}
	if result.Improvement != nil && result.Improvement.Improved {
		fmt.Printf("Improvement applied to %s (%d changes)\n",
			result.Improvement.TargetDimension, len(result.Improvement.ChangesMade))
	}
	for _, rb := range result.RoleBullets {
		if rb.Degraded {
			fmt.Printf("Role %s: DEGRADED (%s)\n", rb.RoleID, rb.FailureReason)
		}
		if rb.QAResult != nil && !rb.QAResult.Passed {
			fmt.Printf("Role %s: fact check flagged %d bullets\n", rb.RoleID, len(rb.QAResult.FlaggedBullets))
		}
		if rb.ATSResult != nil && len(rb.ATSResult.KeywordsMissing) > 0 {
			fmt.Printf("Role %s: missing keywords: %v\n", rb.RoleID, rb.ATSResult.KeywordsMissing)
		}
	}
	if result.Header != nil && !result.Header.ValidationResult.Passed {
		fmt.Printf("Header: ungrounded skills: %v\n", result.Header.ValidationResult.UngroundedSkills)
	}
}
