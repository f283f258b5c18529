package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/stylo/internal/cache"
	"github.com/ppiankov/stylo/internal/corpus"
	"github.com/ppiankov/stylo/internal/extract"
	"github.com/ppiankov/stylo/internal/model"
	"github.com/ppiankov/stylo/internal/pipeline"
	"github.com/ppiankov/stylo/internal/report"
)

var (
	runFeaturesFile string
	runJSON         string
	runMD           string
	runFolds        int
	runHeldOut      float64
	runSeed         int64
	runEpochs       int
	runLambda       float64
	runWorkers      int
	runNoSelect     bool
	runNoCache      bool
	runKeepResults  bool
	runLLMEnabled   bool
	runLLMProvider  string
	runLLMModel     string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <corpus-dir>",
	Short: "Run the attribution experiment over a corpus",
	Long: `Run loads a corpus (one directory per author, one file per text),
extracts stylometric features, and measures attribution accuracy over
repeated stratified train/test splits.

Example:
  stylo run ./corpus
  stylo run ./corpus --folds 20 --seed 7 --json report.json --md report.md
  stylo run ./corpus --features features.tsv --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input flags
	runCmd.Flags().StringVar(&runFeaturesFile, "features", "", "load features from a TSV snapshot instead of extracting")

	// Output flags
	runCmd.Flags().StringVar(&runJSON, "json", "report.json", "output JSON path")
	runCmd.Flags().StringVar(&runMD, "md", "", "output Markdown path (optional)")
	runCmd.Flags().BoolVar(&runKeepResults, "keep-results", false, "include per-sample results in the JSON report")

	// Experiment flags
	runCmd.Flags().IntVar(&runFolds, "folds", 0, "repeated stratified splits (0 = config default)")
	runCmd.Flags().Float64Var(&runHeldOut, "held-out", 0, "held-out test fraction (0 = config default)")
	runCmd.Flags().Int64Var(&runSeed, "seed", -1, "split/training seed (-1 = config default)")
	runCmd.Flags().IntVar(&runEpochs, "epochs", 0, "training epochs per classifier (0 = config default)")
	runCmd.Flags().Float64Var(&runLambda, "lambda", 0, "regularization strength (0 = config default)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel training workers (0 = all CPUs)")
	runCmd.Flags().BoolVar(&runNoSelect, "no-select", false, "disable univariate feature selection")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "disable the feature cache")

	// LLM flags
	runCmd.Flags().BoolVar(&runLLMEnabled, "llm", false, "attach an LLM commentary to the report")
	runCmd.Flags().StringVar(&runLLMProvider, "llm-provider", "openai", "LLM provider (openai)")
	runCmd.Flags().StringVar(&runLLMModel, "llm-model", "", "LLM model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	corpusDir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	if runLLMEnabled && cfg.LLM.Provider == "openai" && os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	var progress io.Writer
	if verbose {
		progress = os.Stderr
	}

	ds, err := loadDataset(cfg, corpusDir, progress)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %d samples across %d authors\n", ds.Len(), len(ds.Classes()))
	}

	rep, err := pipeline.NewRunner(cfg, progress).Run(context.Background(), corpusDir, ds)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return writeOutputs(cfg, rep)
}

// loadDataset reads the corpus: a previously saved features snapshot when
// --features is given, otherwise full extraction from the directory tree.
func loadDataset(cfg *model.Config, corpusDir string, progress io.Writer) (model.Dataset, error) {
	if runFeaturesFile != "" {
		return corpus.LoadFeatures(runFeaturesFile)
	}

	c, err := buildCache(cfg)
	if err != nil {
		return nil, err
	}
	return corpus.NewLoader(extract.NewExtractor(), c, progress).Load(corpusDir)
}

func writeOutputs(cfg *model.Config, rep *model.Report) error {
	if cfg.Output.JSONPath != "" {
		if err := report.WriteJSON(cfg.Output.JSONPath, rep); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", cfg.Output.JSONPath)
	}
	if cfg.Output.MarkdownPath != "" {
		f, err := os.Create(cfg.Output.MarkdownPath)
		if err != nil {
			return fmt.Errorf("create markdown report: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.RenderMarkdown(f, rep); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", cfg.Output.MarkdownPath)
	}

	fmt.Printf("accuracy: %.1f%% ± %.1f%% over %d fold(s)\n",
		100*rep.Summary.Accuracy.Mean, 100*rep.Summary.Accuracy.StdErr, rep.Folds)
	return nil
}

// loadConfig resolves the configuration: defaults, then config file and
// STYLO_* environment via viper.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// applyRunFlags layers explicit CLI flags on top of the resolved config.
// Flags the user did not pass leave config-file and environment values
// intact, so the flags > env > file > defaults hierarchy holds.
func applyRunFlags(cmd *cobra.Command, cfg *model.Config) {
	if runFolds > 0 {
		cfg.Split.Folds = runFolds
	}
	if runHeldOut > 0 {
		cfg.Split.HeldOut = runHeldOut
	}
	if runSeed >= 0 {
		cfg.Split.Seed = runSeed
	}
	if runEpochs > 0 {
		cfg.Train.Epochs = runEpochs
	}
	if runLambda > 0 {
		cfg.Train.Lambda = runLambda
	}
	if runWorkers > 0 {
		cfg.Train.Workers = runWorkers
	}
	if runNoSelect {
		cfg.Select.Enabled = false
	}
	if runNoCache {
		cfg.Cache.Enabled = false
	}

	if cmd.Flags().Changed("json") {
		cfg.Output.JSONPath = runJSON
	}
	if cmd.Flags().Changed("md") {
		cfg.Output.MarkdownPath = runMD
	}
	if cmd.Flags().Changed("keep-results") {
		cfg.Output.KeepResults = runKeepResults
	}
	cfg.Output.Verbose = verbose

	if runLLMEnabled {
		cfg.LLM.Provider = runLLMProvider
		if runLLMModel != "" {
			cfg.LLM.Model = runLLMModel
		}
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	} else {
		cfg.LLM.Provider = ""
	}
}

// buildCache creates the layered cache, or nil when caching is disabled.
func buildCache(cfg *model.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		dir = filepath.Join(home, ".stylo", "cache")
	}
	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL), nil
}
