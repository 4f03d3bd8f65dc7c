package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/claimpilot/claimpilot/internal/intake"
	"github.com/claimpilot/claimpilot/internal/worker"
)

var (
	batchOutputDir  string
	batchNoMarkdown bool
	batchStorePath  string
	batchProvider   string
	batchModel      string
	batchWorkers    int
	batchTimeout    time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Evaluate every claim submission in a directory",
	Long: `Batch scans a directory for claim submission files (*.yaml, *.yml) and
evaluates each one through the full pipeline with a bounded worker pool.

Each submission file names its evidence image via the evidence field;
relative paths resolve against the submission file's directory. Per-claim failures
(invalid submissions, duplicates, unreadable evidence) are reported and
skipped without stopping the batch.

  claimpilot batch ./submissions --workers 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&batchNoMarkdown, "no-markdown", false, "skip Markdown reports")
	batchCmd.Flags().StringVar(&batchStorePath, "store", "claimpilot.db", "evidence fingerprint ledger path")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of concurrent evaluations")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")

	batchCmd.Flags().StringVar(&batchProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "llm-model", "", "LLM model name (provider default if empty)")
}

// claimJob evaluates one submission file through the shared stack
type claimJob struct {
	path  string
	stack *stack
}

// claimResult reports the outcome for one submission file
type claimResult struct {
	path     string
	claimID  string
	decision string
	report   string
	err      error
}

func (r *claimResult) GetError() error { return r.err }

func (j *claimJob) Execute(ctx context.Context) worker.Result {
	res := &claimResult{path: j.path}

	sub, err := loadBatchSubmission(j.path)
	if err != nil {
		res.err = err
		return res
	}

	rec, err := j.stack.gate.Accept(ctx, sub)
	if err != nil {
		res.err = describeIntakeError(err)
		return res
	}
	res.claimID = rec.ID

	if err := j.stack.pipeline.Run(ctx, rec); err != nil {
		res.err = describeIntakeError(err)
		return res
	}

	jsonPath, _, err := j.stack.emitter.Emit(rec)
	if err != nil {
		res.err = fmt.Errorf("emit report: %w", err)
		return res
	}

	res.decision = rec.Decision.String()
	res.report = jsonPath
	return res
}

// loadBatchSubmission parses a submission file and resolves its evidence
// path relative to the file's directory
func loadBatchSubmission(path string) (intake.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intake.Submission{}, fmt.Errorf("read submission: %w", err)
	}
	var sub intake.Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return intake.Submission{}, fmt.Errorf("parse submission: %w", err)
	}
	if sub.EvidencePath != "" && !filepath.IsAbs(sub.EvidencePath) {
		sub.EvidencePath = filepath.Join(filepath.Dir(path), sub.EvidencePath)
	}
	return sub, nil
}

func findSubmissions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read submissions directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := findSubmissions(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no submission files (*.yaml, *.yml) found in %s", args[0])
	}

	cfg := buildConfig()
	cfg.Store.Path = batchStorePath
	cfg.Output.Dir = batchOutputDir
	cfg.Output.Markdown = !batchNoMarkdown
	cfg.LLM.Provider = batchProvider
	cfg.LLM.Model = batchModel
	cfg.Concurrency.Workers = batchWorkers

	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Evaluating %d submissions with %d workers\n\n", len(paths), cfg.Concurrency.Workers)

	pool := worker.NewPool(cfg.Concurrency.Workers)
	pool.Start()
	timer := time.AfterFunc(batchTimeout, pool.Shutdown)
	defer timer.Stop()

	for _, path := range paths {
		pool.Submit(&claimJob{path: path, stack: st})
	}
	results := pool.Wait()

	failed := 0
	for _, r := range results {
		res := r.(*claimResult)
		name := filepath.Base(res.path)
		if res.err != nil {
			failed++
			fmt.Printf("  %-30s ERROR   %v\n", name, res.err)
			continue
		}
		fmt.Printf("  %-30s %-7s %s\n", name, res.decision, res.report)
	}

	snap := st.metrics.Snapshot()
	fmt.Printf("\nEvaluated: %d  Approved: %d  Rejected: %d  Flagged: %d  Failed: %d\n",
		snap.ClaimsEvaluated, snap.Approved, snap.Rejected, snap.Flagged, failed)
	fmt.Printf("Stages run: %d (%d degraded)\n", snap.StagesRun, snap.StagesDegraded)

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(paths))
	}
	return nil
}
