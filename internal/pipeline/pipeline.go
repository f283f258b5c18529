// Package pipeline runs the full attribution experiment: repeated stratified
// splits, per-fold preprocessing and training, two-phase evaluation and the
// final report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/ppiankov/stylo/internal/classify"
	"github.com/ppiankov/stylo/internal/llm"
	"github.com/ppiankov/stylo/internal/model"
	"github.com/ppiankov/stylo/internal/preprocess"
	"github.com/ppiankov/stylo/internal/report"
	"github.com/ppiankov/stylo/internal/split"
	"github.com/ppiankov/stylo/internal/svm"
)

// Runner executes attribution experiments for one configuration.
type Runner struct {
	cfg     *model.Config
	verbose io.Writer // nil disables progress output
}

// NewRunner creates a runner. verbose may be nil.
func NewRunner(cfg *model.Config, verbose io.Writer) *Runner {
	return &Runner{cfg: cfg, verbose: verbose}
}

// Run performs the configured number of folds over the dataset and returns
// the assembled report. corpus names the data source for the report header.
func (r *Runner) Run(ctx context.Context, corpus string, ds model.Dataset) (*model.Report, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("pipeline: empty dataset")
	}
	classes := ds.Classes()
	if len(classes) < 2 {
		return nil, fmt.Errorf("pipeline: need at least 2 classes, have %d", len(classes))
	}

	folds := r.cfg.Split.Folds
	if folds < 1 {
		folds = 1
	}

	stats := make([]model.FoldStats, 0, folds)
	for fold := 0; fold < folds; fold++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fs, err := r.runFold(fold, ds)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", fold, err)
		}
		if r.verbose != nil {
			fmt.Fprintf(r.verbose, "fold %d/%d: accuracy %.1f%%, unclassified %.1f%%\n",
				fold+1, folds, 100*fs.Accuracy, 100*fs.UnclassifiedAfterPhase2)
		}
		stats = append(stats, fs)
	}

	rep := report.Build(corpus, classes, ds.Len(), r.cfg, stats)

	if err := r.attachSummary(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// runFold executes one stratified shuffle: split, fit the transforms on the
// train partition, train both stages and evaluate the held-out samples.
func (r *Runner) runFold(fold int, ds model.Dataset) (model.FoldStats, error) {
	// Each fold reshuffles with its own seed; fold 0 reproduces a
	// single-split run at the configured seed.
	foldSeed := r.cfg.Split.Seed + int64(fold)

	splitter, err := split.New(r.cfg.Split.HeldOut, foldSeed)
	if err != nil {
		return model.FoldStats{}, err
	}
	train, test, err := splitter.Split(ds)
	if err != nil {
		return model.FoldStats{}, err
	}

	train, test, err = r.preprocessFold(train, test)
	if err != nil {
		return model.FoldStats{}, err
	}

	factory := func(identity string) classify.BinaryClassifier {
		return svm.NewSeeded(identity, r.cfg.Train.Epochs, r.cfg.Train.Lambda, foldSeed)
	}
	workers := r.cfg.Train.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	classes := ds.Classes()
	ovr := classify.NewOvRStage(classes, factory)
	if err := ovr.Train(train, workers); err != nil {
		return model.FoldStats{}, fmt.Errorf("train ovr: %w", err)
	}
	ovo := classify.NewOvOStage(classes, factory)
	if err := ovo.Train(train, workers); err != nil {
		return model.FoldStats{}, fmt.Errorf("train ovo: %w", err)
	}

	results, err := classify.NewHybrid(ovr, ovo).Evaluate(test, workers)
	if err != nil {
		return model.FoldStats{}, fmt.Errorf("evaluate: %w", err)
	}
	return report.TallyFold(fold, train.Len(), results), nil
}

// preprocessFold fits the scaler and selector on the train partition only,
// then applies them to both partitions.
func (r *Runner) preprocessFold(train, test model.Dataset) (model.Dataset, model.Dataset, error) {
	scaler, err := preprocess.FitMinMax(train.Vectors())
	if err != nil {
		return nil, nil, fmt.Errorf("fit scaler: %w", err)
	}
	trainVecs := scaler.TransformAll(train.Vectors())
	testVecs := scaler.TransformAll(test.Vectors())

	if r.cfg.Select.Enabled {
		dims := len(trainVecs[0])
		k := int(r.cfg.Select.Fraction * float64(dims))
		selector, err := preprocess.FitANOVA(trainVecs, train.Labels(), k)
		if err != nil {
			return nil, nil, fmt.Errorf("fit selector: %w", err)
		}
		trainVecs = selector.ApplyAll(trainVecs)
		testVecs = selector.ApplyAll(testVecs)
	}

	return replaceVectors(train, trainVecs), replaceVectors(test, testVecs), nil
}

// replaceVectors rebuilds a dataset with transformed features, keeping the
// labels and document paths.
func replaceVectors(ds model.Dataset, vectors [][]float64) model.Dataset {
	out := make(model.Dataset, len(ds))
	for i, sample := range ds {
		out[i] = model.LabeledSample{
			Author:   sample.Author,
			Document: sample.Document,
			Features: vectors[i],
		}
	}
	return out
}

// attachSummary adds the optional commentary. It runs last so it can never
// influence the report's numbers.
func (r *Runner) attachSummary(ctx context.Context, rep *model.Report) error {
	summarizer, err := llm.NewSummarizer(r.cfg.LLM)
	if err != nil {
		return err
	}
	if !summarizer.IsEnabled() {
		return nil
	}

	summary, err := summarizer.GenerateSummary(ctx, rep)
	if err != nil {
		// Commentary is best-effort: a dead API must not lose the run.
		if r.verbose != nil {
			fmt.Fprintf(r.verbose, "llm summary failed: %v\n", err)
		}
		return nil
	}
	rep.LLM = summary
	return nil
}
