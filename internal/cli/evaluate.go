package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/claimpilot/claimpilot/internal/evidence"
	"github.com/claimpilot/claimpilot/internal/exif"
	"github.com/claimpilot/claimpilot/internal/intake"
	"github.com/claimpilot/claimpilot/internal/model"
)

var (
	claimFile     string
	narrative     string
	policyStart   string
	dateOfLoss    string
	toleranceDays int
	location      string
	calamity      bool
	outputDir     string
	noMarkdown    bool
	storePath     string
	llmProvider   string
	llmModel      string
	evalTimeout   time.Duration
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [image]",
	Short: "Evaluate a single claim submission",
	Long: `Evaluate runs one claim through the full pipeline:
- Validate mandatory fields and reject duplicate evidence
- Check the photo capture date against the policy dates
- Detect image labels and their relevance to the narrative
- Summarize, extract key facts, and screen for misrepresentation
- Corroborate natural-calamity claims against historical weather
- Synthesize a single APPROVE / REJECT / FLAG decision

The submission can be given as flags or as a YAML claim file:

  claimpilot evaluate photo.jpg --narrative "A flood ruined my garage" \
    --policy-start 2024-01-01 --date-of-loss 2024-06-01 --tolerance-days 5
  claimpilot evaluate --claim claim.yaml --llm-provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&claimFile, "claim", "", "YAML claim submission file")
	evaluateCmd.Flags().StringVar(&narrative, "narrative", "", "claimant's account of what happened")
	evaluateCmd.Flags().StringVar(&policyStart, "policy-start", "", "policy start date (YYYY-MM-DD)")
	evaluateCmd.Flags().StringVar(&dateOfLoss, "date-of-loss", "", "date of loss (YYYY-MM-DD)")
	evaluateCmd.Flags().IntVar(&toleranceDays, "tolerance-days", 0, "allowed days between capture date and date of loss")
	evaluateCmd.Flags().StringVar(&location, "location", "", "loss location (for weather corroboration)")
	evaluateCmd.Flags().BoolVar(&calamity, "natural-calamity", false, "claim relates to a natural calamity")

	evaluateCmd.Flags().StringVar(&outputDir, "output-dir", "./reports", "output directory for reports")
	evaluateCmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "skip the Markdown report")
	evaluateCmd.Flags().StringVar(&storePath, "store", "claimpilot.db", "evidence fingerprint ledger path")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 5*time.Minute, "overall evaluation timeout")

	evaluateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

// loadSubmission builds the Submission from the claim file or flags
func loadSubmission(args []string) (intake.Submission, error) {
	if claimFile != "" {
		data, err := os.ReadFile(claimFile)
		if err != nil {
			return intake.Submission{}, fmt.Errorf("read claim file: %w", err)
		}
		var sub intake.Submission
		if err := yaml.Unmarshal(data, &sub); err != nil {
			return intake.Submission{}, fmt.Errorf("parse claim file: %w", err)
		}
		if len(args) == 1 {
			sub.EvidencePath = args[0]
		}
		return sub, nil
	}

	sub := intake.Submission{
		Narrative: narrative,
		Policy: model.Policy{
			PolicyStartDate: policyStart,
			DateOfLoss:      dateOfLoss,
			ToleranceDays:   toleranceDays,
			Location:        location,
		},
		NaturalCalamity: calamity,
	}
	if len(args) == 1 {
		sub.EvidencePath = args[0]
	}
	return sub, nil
}

func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.Store.Path = storePath
	cfg.Output.Dir = outputDir
	cfg.Output.Markdown = !noMarkdown
	cfg.Output.Verbose = verbose
	return cfg
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	sub, err := loadSubmission(args)
	if err != nil {
		return err
	}

	st, err := buildStack(buildConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.gate.Accept(ctx, sub)
	if err != nil {
		return describeIntakeError(err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Accepted claim %s (fingerprint %s)\n", rec.ID, rec.Fingerprint[:12])
	}

	if err := st.pipeline.Run(ctx, rec); err != nil {
		return describeIntakeError(err)
	}

	jsonPath, mdPath, err := st.emitter.Emit(rec)
	if err != nil {
		return fmt.Errorf("emit report: %w", err)
	}

	fmt.Printf("Decision: %s\n", rec.Decision)
	if rec.ReasonText != "" {
		fmt.Printf("Reason:   %s\n", rec.ReasonText)
	}
	fmt.Printf("Report:   %s\n", jsonPath)
	if mdPath != "" {
		fmt.Printf("          %s\n", mdPath)
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "\nTrace:")
		for _, entry := range rec.Trace {
			fmt.Fprintf(os.Stderr, "  %s\n", entry)
		}
	}

	return nil
}

// describeIntakeError maps the error taxonomy to operator-friendly messages
func describeIntakeError(err error) error {
	switch {
	case errors.Is(err, intake.ErrInvalidSubmission):
		return fmt.Errorf("submission rejected: %w", err)
	case errors.Is(err, intake.ErrDuplicateEvidence):
		return fmt.Errorf("submission rejected: this evidence was already submitted (%w)", err)
	case errors.Is(err, evidence.ErrStoreUnavailable):
		return fmt.Errorf("submission rejected: duplicate check unavailable, try again later (%w)", err)
	case errors.Is(err, exif.ErrEvidenceUnreadable):
		return fmt.Errorf("submission rejected: evidence image cannot be read (%w)", err)
	default:
		return err
	}
}
