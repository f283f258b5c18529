// Package report turns fold results into the final run report: per-fold
// phase accounting, cross-fold aggregates and the confusion matrix.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/stylo/internal/model"
)

// TallyFold computes the per-phase accounting for one fold. The after-phase-1
// counters treat every escalated sample as undecided, so the two columns show
// what the pairwise stage recovered.
func TallyFold(fold, train int, results []model.ClassificationResult) model.FoldStats {
	stats := model.FoldStats{
		Fold:    fold,
		Train:   train,
		Test:    len(results),
		Results: results,
	}
	if len(results) == 0 {
		return stats
	}

	var c1, i1, c2, i2 float64
	for _, r := range results {
		switch r.Phase {
		case model.PhaseOne:
			if r.Correct() {
				c1++
				c2++
			} else {
				i1++
				i2++
			}
		case model.PhaseTwo:
			if r.Correct() {
				c2++
			} else {
				i2++
			}
		}
	}

	n := float64(len(results))
	stats.CorrectAfterPhase1 = c1 / n
	stats.IncorrectAfterPhase1 = i1 / n
	stats.UnclassifiedAfterPhase1 = (n - c1 - i1) / n
	stats.CorrectAfterPhase2 = c2 / n
	stats.IncorrectAfterPhase2 = i2 / n
	stats.UnclassifiedAfterPhase2 = (n - c2 - i2) / n
	stats.Accuracy = stats.CorrectAfterPhase2
	return stats
}

// AggregateFolds computes mean and standard error for each counter across
// folds. A single fold has no spread, so its standard error is zero.
func AggregateFolds(folds []model.FoldStats) model.Summary {
	pick := func(f func(model.FoldStats) float64) model.Aggregate {
		series := make([]float64, len(folds))
		for i, fold := range folds {
			series[i] = f(fold)
		}
		return aggregate(series)
	}

	return model.Summary{
		Accuracy:                pick(func(f model.FoldStats) float64 { return f.Accuracy }),
		CorrectAfterPhase1:      pick(func(f model.FoldStats) float64 { return f.CorrectAfterPhase1 }),
		CorrectAfterPhase2:      pick(func(f model.FoldStats) float64 { return f.CorrectAfterPhase2 }),
		IncorrectAfterPhase1:    pick(func(f model.FoldStats) float64 { return f.IncorrectAfterPhase1 }),
		IncorrectAfterPhase2:    pick(func(f model.FoldStats) float64 { return f.IncorrectAfterPhase2 }),
		UnclassifiedAfterPhase1: pick(func(f model.FoldStats) float64 { return f.UnclassifiedAfterPhase1 }),
		UnclassifiedAfterPhase2: pick(func(f model.FoldStats) float64 { return f.UnclassifiedAfterPhase2 }),
	}
}

func aggregate(series []float64) model.Aggregate {
	if len(series) == 0 {
		return model.Aggregate{}
	}
	mean := stat.Mean(series, nil)
	if len(series) == 1 {
		return model.Aggregate{Mean: mean}
	}
	stddev := stat.StdDev(series, nil)
	return model.Aggregate{
		Mean:   mean,
		StdErr: stddev / math.Sqrt(float64(len(series))),
	}
}

// Confusion builds the cross-fold confusion matrix. Rows are actual classes,
// columns assigned classes plus the undecided bucket.
func Confusion(folds []model.FoldStats) map[string]map[string]int {
	matrix := make(map[string]map[string]int)
	for _, fold := range folds {
		for _, r := range fold.Results {
			row, ok := matrix[r.Actual]
			if !ok {
				row = make(map[string]int)
				matrix[r.Actual] = row
			}
			row[r.Assigned]++
		}
	}
	return matrix
}

// Build assembles the final report from run metadata and fold results.
func Build(corpus string, classes []string, samples int, cfg *model.Config, folds []model.FoldStats) *model.Report {
	rep := &model.Report{
		Corpus:      corpus,
		GeneratedAt: time.Now().UTC(),
		Classes:     classes,
		Samples:     samples,
		Folds:       len(folds),
		HeldOut:     cfg.Split.HeldOut,
		Seed:        cfg.Split.Seed,
		FoldStats:   folds,
		Summary:     AggregateFolds(folds),
		Confusion:   Confusion(folds),
	}
	if !cfg.Output.KeepResults {
		for i := range rep.FoldStats {
			rep.FoldStats[i].Results = nil
		}
	}
	return rep
}

// WriteJSON writes the report to path as indented JSON.
func WriteJSON(path string, rep *model.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// sortedKeys returns the map keys in stable order for rendering.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
