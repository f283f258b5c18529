package report

import (
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/stylo/internal/model"
)

func TestTallyFold(t *testing.T) {
	results := []model.ClassificationResult{
		{Actual: "a", Assigned: "a", Phase: model.PhaseOne},
		{Actual: "a", Assigned: "b", Phase: model.PhaseOne},
		{Actual: "b", Assigned: "b", Phase: model.PhaseTwo},
		{Actual: "b", Assigned: "a", Phase: model.PhaseTwo},
		{Actual: "c", Assigned: model.Unclassified, Phase: model.PhaseTwoTie},
	}

	stats := TallyFold(3, 12, results)

	if stats.Fold != 3 || stats.Train != 12 || stats.Test != 5 {
		t.Errorf("metadata: %+v", stats)
	}

	// Phase 1 decided two samples; the other three count as undecided there.
	check := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	check("CorrectAfterPhase1", stats.CorrectAfterPhase1, 1.0/5)
	check("IncorrectAfterPhase1", stats.IncorrectAfterPhase1, 1.0/5)
	check("UnclassifiedAfterPhase1", stats.UnclassifiedAfterPhase1, 3.0/5)
	check("CorrectAfterPhase2", stats.CorrectAfterPhase2, 2.0/5)
	check("IncorrectAfterPhase2", stats.IncorrectAfterPhase2, 2.0/5)
	check("UnclassifiedAfterPhase2", stats.UnclassifiedAfterPhase2, 1.0/5)
	check("Accuracy", stats.Accuracy, 2.0/5)
}

func TestTallyFoldEmpty(t *testing.T) {
	stats := TallyFold(0, 0, nil)
	if stats.Accuracy != 0 || stats.Test != 0 {
		t.Errorf("empty fold: %+v", stats)
	}
}

func TestAggregateConstantSeries(t *testing.T) {
	folds := []model.FoldStats{
		{Accuracy: 0.8},
		{Accuracy: 0.8},
		{Accuracy: 0.8},
	}
	summary := AggregateFolds(folds)
	if math.Abs(summary.Accuracy.Mean-0.8) > 1e-12 {
		t.Errorf("mean = %v, want 0.8", summary.Accuracy.Mean)
	}
	if summary.Accuracy.StdErr != 0 {
		t.Errorf("constant series stderr = %v, want 0", summary.Accuracy.StdErr)
	}
}

func TestAggregateSingleFold(t *testing.T) {
	summary := AggregateFolds([]model.FoldStats{{Accuracy: 0.75}})
	if summary.Accuracy.Mean != 0.75 || summary.Accuracy.StdErr != 0 {
		t.Errorf("single fold: %+v", summary.Accuracy)
	}
}

func TestAggregateSpread(t *testing.T) {
	folds := []model.FoldStats{
		{Accuracy: 0.6},
		{Accuracy: 0.8},
	}
	summary := AggregateFolds(folds)
	if math.Abs(summary.Accuracy.Mean-0.7) > 1e-12 {
		t.Errorf("mean = %v, want 0.7", summary.Accuracy.Mean)
	}
	// Sample stddev of {0.6, 0.8} is ~0.1414; stderr divides by sqrt(2).
	want := math.Sqrt(0.02) / math.Sqrt(2)
	if math.Abs(summary.Accuracy.StdErr-want) > 1e-12 {
		t.Errorf("stderr = %v, want %v", summary.Accuracy.StdErr, want)
	}
}

func TestConfusion(t *testing.T) {
	folds := []model.FoldStats{
		{Results: []model.ClassificationResult{
			{Actual: "a", Assigned: "a", Phase: model.PhaseOne},
			{Actual: "a", Assigned: "b", Phase: model.PhaseTwo},
		}},
		{Results: []model.ClassificationResult{
			{Actual: "a", Assigned: "a", Phase: model.PhaseTwo},
			{Actual: "b", Assigned: model.Unclassified, Phase: model.PhaseTwoTie},
		}},
	}
	matrix := Confusion(folds)
	if matrix["a"]["a"] != 2 || matrix["a"]["b"] != 1 {
		t.Errorf("row a: %v", matrix["a"])
	}
	if matrix["b"][model.Unclassified] != 1 {
		t.Errorf("row b: %v", matrix["b"])
	}
}

func TestRenderMarkdown(t *testing.T) {
	cfg := model.DefaultConfig()
	folds := []model.FoldStats{
		TallyFold(0, 10, []model.ClassificationResult{
			{Actual: "austen", Assigned: "austen", Phase: model.PhaseOne},
			{Actual: "dickens", Assigned: model.Unclassified, Phase: model.PhaseTwoTie},
		}),
	}
	rep := Build("testdata/corpus", []string{"austen", "dickens"}, 12, cfg, folds)

	var sb strings.Builder
	if err := RenderMarkdown(&sb, rep); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"Authorship Attribution Report", "austen", "Confusion matrix", "Per-fold results"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBuildDropsResultsByDefault(t *testing.T) {
	cfg := model.DefaultConfig()
	folds := []model.FoldStats{
		TallyFold(0, 4, []model.ClassificationResult{
			{Actual: "a", Assigned: "a", Phase: model.PhaseOne},
		}),
	}
	rep := Build("c", []string{"a"}, 5, cfg, folds)
	if rep.FoldStats[0].Results != nil {
		t.Error("per-sample results kept without keep_results")
	}
	if len(rep.Confusion) == 0 {
		t.Error("confusion matrix should be built before results are dropped")
	}
}
