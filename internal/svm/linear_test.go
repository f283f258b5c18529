package svm

import (
	"errors"
	"testing"
)

// separable2D is a tiny linearly separable problem: positives cluster around
// (1, 0), negatives around (0, 1).
func separable2D() ([][]float64, []int) {
	vectors := [][]float64{
		{1.0, 0.0}, {0.9, 0.1}, {1.1, 0.05}, {0.95, 0.0},
		{0.0, 1.0}, {0.1, 0.9}, {0.05, 1.1}, {0.0, 0.95},
	}
	labels := []int{1, 1, 1, 1, -1, -1, -1, -1}
	return vectors, labels
}

func TestLinear_SeparableData(t *testing.T) {
	vectors, labels := separable2D()

	clf := NewLinear(300, 0.01, 7)
	if err := clf.Train(vectors, labels); err != nil {
		t.Fatalf("train: %v", err)
	}

	for i, v := range vectors {
		label, margin, err := clf.Decide(v)
		if err != nil {
			t.Fatalf("decide sample %d: %v", i, err)
		}
		if label != labels[i] {
			t.Errorf("sample %d: got label %d (margin %.3f), want %d", i, label, margin, labels[i])
		}
	}
}

func TestLinear_Deterministic(t *testing.T) {
	vectors, labels := separable2D()

	a := NewLinear(100, 0.01, 42)
	b := NewLinear(100, 0.01, 42)
	if err := a.Train(vectors, labels); err != nil {
		t.Fatalf("train a: %v", err)
	}
	if err := b.Train(vectors, labels); err != nil {
		t.Fatalf("train b: %v", err)
	}

	probe := []float64{0.7, 0.3}
	_, ma, err := a.Decide(probe)
	if err != nil {
		t.Fatalf("decide a: %v", err)
	}
	_, mb, err := b.Decide(probe)
	if err != nil {
		t.Fatalf("decide b: %v", err)
	}
	if ma != mb {
		t.Errorf("same seed produced different margins: %v vs %v", ma, mb)
	}
}

func TestLinear_TrainingErrors(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		labels  []int
	}{
		{"empty", nil, nil},
		{"single class", [][]float64{{1}, {2}}, []int{1, 1}},
		{"inconsistent dims", [][]float64{{1, 2}, {1}}, []int{1, -1}},
		{"bad label", [][]float64{{1}, {2}}, []int{1, 0}},
		{"length mismatch", [][]float64{{1}, {2}}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := NewLinear(10, 0.01, 1)
			err := clf.Train(tt.vectors, tt.labels)
			if !errors.Is(err, ErrTraining) {
				t.Errorf("expected ErrTraining, got %v", err)
			}
		})
	}
}

func TestLinear_SchemaMismatch(t *testing.T) {
	vectors, labels := separable2D()
	clf := NewLinear(50, 0.01, 1)
	if err := clf.Train(vectors, labels); err != nil {
		t.Fatalf("train: %v", err)
	}

	if _, _, err := clf.Decide([]float64{1, 2, 3}); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestLinear_DecideBeforeTrain(t *testing.T) {
	clf := NewLinear(10, 0.01, 1)
	if _, _, err := clf.Decide([]float64{1, 2}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}
