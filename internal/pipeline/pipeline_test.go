package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/ppiankov/stylo/internal/model"
)

// separableDataset builds authors whose vectors occupy disjoint regions, so
// the full pipeline should attribute the held-out samples correctly.
func separableDataset(authors []string, perAuthor, dims int) model.Dataset {
	var ds model.Dataset
	for ci, author := range authors {
		for j := 0; j < perAuthor; j++ {
			vec := make(model.FeatureVector, dims)
			vec[ci] = 1.0 + 0.05*float64(j%4)
			vec[(ci+1)%dims] = 0.2
			ds = append(ds, model.LabeledSample{Author: author, Features: vec})
		}
	}
	return ds
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Split.Seed = 11
	cfg.Split.Folds = 3
	cfg.Train.Epochs = 300
	cfg.Train.Workers = 2
	return cfg
}

func TestRunnerSeparableCorpus(t *testing.T) {
	authors := []string{"austen", "bronte", "dickens"}
	ds := separableDataset(authors, 10, 6)

	rep, err := NewRunner(testConfig(), nil).Run(context.Background(), "synthetic", ds)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Folds != 3 || rep.Samples != 30 {
		t.Errorf("metadata: folds=%d samples=%d", rep.Folds, rep.Samples)
	}
	if !reflect.DeepEqual(rep.Classes, authors) {
		t.Errorf("classes = %v", rep.Classes)
	}
	if len(rep.FoldStats) != 3 {
		t.Fatalf("fold stats: %d", len(rep.FoldStats))
	}
	for _, fs := range rep.FoldStats {
		if fs.Train+fs.Test != 30 {
			t.Errorf("fold %d: train %d + test %d != 30", fs.Fold, fs.Train, fs.Test)
		}
	}
	if rep.Summary.Accuracy.Mean < 0.9 {
		t.Errorf("separable corpus accuracy %.2f, want >= 0.9", rep.Summary.Accuracy.Mean)
	}
	if rep.LLM != nil {
		t.Error("llm summary attached without a provider")
	}
}

func TestRunnerDeterministic(t *testing.T) {
	ds := separableDataset([]string{"a", "b", "c"}, 8, 6)

	first, err := NewRunner(testConfig(), nil).Run(context.Background(), "synthetic", ds)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := NewRunner(testConfig(), nil).Run(context.Background(), "synthetic", ds)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first.FoldStats, second.FoldStats) {
		t.Error("same seed produced different fold stats")
	}
	if !reflect.DeepEqual(first.Confusion, second.Confusion) {
		t.Error("same seed produced different confusion matrices")
	}
}

func TestRunnerErrors(t *testing.T) {
	runner := NewRunner(testConfig(), nil)
	ctx := context.Background()

	if _, err := runner.Run(ctx, "empty", nil); err == nil {
		t.Error("empty dataset: want error")
	}

	single := separableDataset([]string{"only"}, 6, 4)
	if _, err := runner.Run(ctx, "single", single); err == nil {
		t.Error("single class: want error")
	}

	// A class with one member cannot appear on both sides of any split.
	ds := separableDataset([]string{"a", "b"}, 6, 4)
	ds = append(ds, model.LabeledSample{Author: "c", Features: make(model.FeatureVector, 4)})
	if _, err := runner.Run(ctx, "tiny-class", ds); err == nil {
		t.Error("single-member class: want error")
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := separableDataset([]string{"a", "b"}, 6, 4)
	if _, err := NewRunner(testConfig(), nil).Run(ctx, "synthetic", ds); err == nil {
		t.Error("cancelled context: want error")
	}
}
