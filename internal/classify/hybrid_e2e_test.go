package classify

import (
	"fmt"
	"testing"

	"github.com/ppiankov/stylo/internal/model"
	"github.com/ppiankov/stylo/internal/split"
	"github.com/ppiankov/stylo/internal/svm"
)

// TestHybrid_SeparableClustersStayInPhase1 runs the full procedure with the
// real linear classifier on a 4-class dataset of one-hot-like clusters.
// Trivially separable data must never need escalation: accuracy 1.0 and
// every decision in phase 1.
func TestHybrid_SeparableClustersStayInPhase1(t *testing.T) {
	classes := []string{"austen", "dickens", "melville", "twain"}

	var ds model.Dataset
	for ci, class := range classes {
		for j := 0; j < 8; j++ {
			vec := make(model.FeatureVector, len(classes))
			vec[ci] = 1.0 + 0.05*float64(j%3) // tight cluster on its own axis
			ds = append(ds, model.LabeledSample{
				Author:   class,
				Document: fmt.Sprintf("%s-%d", class, j),
				Features: vec,
			})
		}
	}

	splitter, err := split.New(0.30, 17)
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	train, test, err := splitter.Split(ds)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	factory := func(identity string) BinaryClassifier {
		return svm.NewSeeded(identity, 400, 0.01, 17)
	}

	ovr := NewOvRStage(classes, factory)
	if err := ovr.Train(train, 4); err != nil {
		t.Fatalf("train ovr: %v", err)
	}
	ovo := NewOvOStage(classes, factory)
	if err := ovo.Train(train, 4); err != nil {
		t.Fatalf("train ovo: %v", err)
	}

	results, err := NewHybrid(ovr, ovo).Evaluate(test, 4)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	correct := 0
	for _, r := range results {
		if r.Phase != model.PhaseOne {
			t.Errorf("sample %d (%s): decided in %s, want %s", r.Sample, r.Actual, r.Phase, model.PhaseOne)
		}
		if r.Correct() {
			correct++
		}
	}
	if correct != len(results) {
		t.Errorf("accuracy %d/%d, want every sample correct", correct, len(results))
	}
}

// TestHybrid_ParallelTrainingIsReproducible trains the same stages twice
// with different worker counts and checks the decisions agree: per-identity
// seeds make goroutine scheduling irrelevant.
func TestHybrid_ParallelTrainingIsReproducible(t *testing.T) {
	classes := []string{"a", "b", "c"}

	var ds model.Dataset
	for ci, class := range classes {
		for j := 0; j < 6; j++ {
			vec := make(model.FeatureVector, 3)
			vec[ci] = 1.0 + 0.1*float64(j%2)
			vec[(ci+1)%3] = 0.2
			ds = append(ds, model.LabeledSample{Author: class, Features: vec})
		}
	}

	run := func(workers int) []model.ClassificationResult {
		t.Helper()
		splitter, err := split.New(0.30, 5)
		if err != nil {
			t.Fatalf("new splitter: %v", err)
		}
		train, test, err := splitter.Split(ds)
		if err != nil {
			t.Fatalf("split: %v", err)
		}
		factory := func(identity string) BinaryClassifier {
			return svm.NewSeeded(identity, 150, 0.01, 5)
		}
		ovr := NewOvRStage(classes, factory)
		if err := ovr.Train(train, workers); err != nil {
			t.Fatalf("train ovr: %v", err)
		}
		ovo := NewOvOStage(classes, factory)
		if err := ovo.Train(train, workers); err != nil {
			t.Fatalf("train ovo: %v", err)
		}
		results, err := NewHybrid(ovr, ovo).Evaluate(test, 1)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		return results
	}

	serial := run(1)
	parallel := run(8)
	if len(serial) != len(parallel) {
		t.Fatalf("result counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
}
