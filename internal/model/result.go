package model

import "time"

// Phase records which stage of the hybrid procedure produced a final answer.
type Phase string

const (
	// PhaseOne - exactly one one-vs-rest classifier claimed the sample.
	PhaseOne Phase = "phase1"
	// PhaseTwo - pairwise voting produced a unique maximum.
	PhaseTwo Phase = "phase2"
	// PhaseTwoTie - pairwise voting tied at the maximum; no decision is made.
	PhaseTwoTie Phase = "phase2_tie"
)

// Unclassified is the label assigned when neither phase reaches a decision.
// Ties are deliberately left undecided: guessing would corrupt the accuracy
// measurement.
const Unclassified = "unclassified"

// ClassificationResult is the terminal outcome for a single test sample.
type ClassificationResult struct {
	Sample   int    `json:"sample"` // index within the evaluated test set
	Actual   string `json:"actual"`
	Assigned string `json:"assigned"` // Unclassified when no decision was reached
	Phase    Phase  `json:"phase"`
}

// Correct reports whether the sample received its true label.
func (r ClassificationResult) Correct() bool {
	return r.Assigned != Unclassified && r.Assigned == r.Actual
}

// FoldStats is the per-fold accounting of the two-phase procedure. The
// after-phase-1 counters treat every escalated sample as unclassified, so the
// pair of columns shows how much the second phase recovered.
type FoldStats struct {
	Fold     int     `json:"fold"`
	Train    int     `json:"train_samples"`
	Test     int     `json:"test_samples"`
	Accuracy float64 `json:"accuracy"`

	CorrectAfterPhase1      float64 `json:"correct_after_phase1"`
	CorrectAfterPhase2      float64 `json:"correct_after_phase2"`
	IncorrectAfterPhase1    float64 `json:"incorrect_after_phase1"`
	IncorrectAfterPhase2    float64 `json:"incorrect_after_phase2"`
	UnclassifiedAfterPhase1 float64 `json:"unclassified_after_phase1"`
	UnclassifiedAfterPhase2 float64 `json:"unclassified_after_phase2"`

	Results []ClassificationResult `json:"results,omitempty"`
}

// Aggregate is a mean with its standard error across folds.
type Aggregate struct {
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"stderr"`
}

// Summary aggregates fold statistics across the whole run.
type Summary struct {
	Accuracy                Aggregate `json:"accuracy"`
	CorrectAfterPhase1      Aggregate `json:"correct_after_phase1"`
	CorrectAfterPhase2      Aggregate `json:"correct_after_phase2"`
	IncorrectAfterPhase1    Aggregate `json:"incorrect_after_phase1"`
	IncorrectAfterPhase2    Aggregate `json:"incorrect_after_phase2"`
	UnclassifiedAfterPhase1 Aggregate `json:"unclassified_after_phase1"`
	UnclassifiedAfterPhase2 Aggregate `json:"unclassified_after_phase2"`
}

// Report is the complete output of an attribution run.
type Report struct {
	Corpus      string    `json:"corpus"`
	GeneratedAt time.Time `json:"generated_at"`
	Classes     []string  `json:"classes"`
	Samples     int       `json:"samples"`
	Folds       int       `json:"folds"`
	HeldOut     float64   `json:"held_out_fraction"`
	Seed        int64     `json:"seed"`

	FoldStats []FoldStats `json:"fold_stats"`
	Summary   Summary     `json:"summary"`

	// Confusion counts final assignments across all folds. Rows are actual
	// classes, columns assigned classes plus Unclassified.
	Confusion map[string]map[string]int `json:"confusion"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects the numbers above
}

// LLMSummary contains an optional generated prose summary of the report.
// It is produced after all statistics are final and never influences them.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
