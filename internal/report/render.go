package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/stylo/internal/model"
)

// RenderMarkdown writes a human-readable summary of the report.
func RenderMarkdown(w io.Writer, rep *model.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Authorship Attribution Report\n\n")
	fmt.Fprintf(&b, "- Corpus: %s\n", rep.Corpus)
	fmt.Fprintf(&b, "- Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Classes: %d (%s)\n", len(rep.Classes), strings.Join(rep.Classes, ", "))
	fmt.Fprintf(&b, "- Samples: %d\n", rep.Samples)
	fmt.Fprintf(&b, "- Folds: %d, held-out fraction %.2f, seed %d\n\n", rep.Folds, rep.HeldOut, rep.Seed)

	fmt.Fprintf(&b, "## Summary (mean ± standard error across folds)\n\n")
	fmt.Fprintf(&b, "| Metric | After phase 1 | After phase 2 |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| Correct | %s | %s |\n",
		fmtAggregate(rep.Summary.CorrectAfterPhase1), fmtAggregate(rep.Summary.CorrectAfterPhase2))
	fmt.Fprintf(&b, "| Incorrect | %s | %s |\n",
		fmtAggregate(rep.Summary.IncorrectAfterPhase1), fmtAggregate(rep.Summary.IncorrectAfterPhase2))
	fmt.Fprintf(&b, "| Unclassified | %s | %s |\n\n",
		fmtAggregate(rep.Summary.UnclassifiedAfterPhase1), fmtAggregate(rep.Summary.UnclassifiedAfterPhase2))
	fmt.Fprintf(&b, "Overall accuracy: %s\n\n", fmtAggregate(rep.Summary.Accuracy))

	if len(rep.Confusion) > 0 {
		renderConfusion(&b, rep)
	}

	fmt.Fprintf(&b, "## Per-fold results\n\n")
	fmt.Fprintf(&b, "| Fold | Train | Test | Accuracy | Unclassified |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	for _, fold := range rep.FoldStats {
		fmt.Fprintf(&b, "| %d | %d | %d | %.1f%% | %.1f%% |\n",
			fold.Fold, fold.Train, fold.Test,
			100*fold.Accuracy, 100*fold.UnclassifiedAfterPhase2)
	}

	if rep.LLM != nil && rep.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "\n## Commentary (%s/%s)\n\n%s\n", rep.LLM.Provider, rep.LLM.Model, rep.LLM.SummaryMD)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderConfusion(b *strings.Builder, rep *model.Report) {
	cols := append([]string{}, rep.Classes...)
	cols = append(cols, model.Unclassified)

	fmt.Fprintf(b, "## Confusion matrix\n\n")
	fmt.Fprintf(b, "| actual \\ assigned |")
	for _, c := range cols {
		fmt.Fprintf(b, " %s |", c)
	}
	fmt.Fprintf(b, "\n|---|")
	for range cols {
		fmt.Fprintf(b, "---|")
	}
	fmt.Fprintf(b, "\n")

	for _, actual := range sortedKeys(rep.Confusion) {
		fmt.Fprintf(b, "| %s |", actual)
		for _, c := range cols {
			fmt.Fprintf(b, " %d |", rep.Confusion[actual][c])
		}
		fmt.Fprintf(b, "\n")
	}
	fmt.Fprintf(b, "\n")
}

func fmtAggregate(a model.Aggregate) string {
	return fmt.Sprintf("%.1f%% ± %.1f%%", 100*a.Mean, 100*a.StdErr)
}
