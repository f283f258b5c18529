package extract

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/stylo/internal/model"
)

func TestExtract_SchemaWidth(t *testing.T) {
	e := NewExtractor()

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20) +
		"Stylometry measures authorial fingerprints with shallow statistics! Does it work? "

	vec, stats, err := e.Extract(text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !vec.Valid() {
		t.Fatalf("expected %d dims, got %d", model.NumFeatures, len(vec))
	}
	if stats.Sentences == 0 || stats.Words == 0 {
		t.Errorf("empty stats: %+v", stats)
	}
}

func TestExtract_DistributionsSumToOne(t *testing.T) {
	e := NewExtractor()

	text := strings.Repeat("He wandered and she waited while they watched the harbour lights. ", 30)
	vec, _, err := e.Extract(text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	blocks := []int{model.FeatSentenceLen, model.FeatWordLen, model.FeatPronouns, model.FeatConjunctions}
	for _, offset := range blocks {
		sum := 0.0
		for i := 0; i < model.DistWidth; i++ {
			sum += vec[offset+i]
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("distribution at offset %d sums to %v, want 1", offset, sum)
		}
	}
}

func TestExtract_LegomenaRatios(t *testing.T) {
	e := NewExtractor()

	// Non-stop-word vocabulary: raven x3, midnight x2, dreary x1, pondered x1.
	// Unique = 4, hapax = 2, dis = 1.
	text := "Raven raven raven. Midnight midnight dreary. Pondered."
	vec, _, err := e.Extract(text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if got, want := vec[model.FeatHapax], 2.0/4.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("hapax ratio %v, want %v", got, want)
	}
	if got, want := vec[model.FeatDis], 1.0/4.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("dis ratio %v, want %v", got, want)
	}
	if got, want := vec[model.FeatRichness], 4.0/7.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("richness %v, want %v", got, want)
	}
}

func TestExtract_SentenceLengthBins(t *testing.T) {
	e := NewExtractor()

	// Two 3-word sentences and one 5-word sentence (words chosen to avoid
	// being filtered anywhere: filtering only affects legomena, not bins).
	text := "Ships sailed away. Storms gathered quickly. Sailors feared the rising water."
	vec, stats, err := e.Extract(text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if stats.Sentences != 3 {
		t.Fatalf("expected 3 sentences, got %d", stats.Sentences)
	}

	if got := vec[model.FeatSentenceLen+2]; math.Abs(got-2.0/3.0) > 1e-9 { // bin for length 3
		t.Errorf("length-3 bin = %v, want 2/3", got)
	}
	if got := vec[model.FeatSentenceLen+4]; math.Abs(got-1.0/3.0) > 1e-9 { // bin for length 5
		t.Errorf("length-5 bin = %v, want 1/3", got)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	e := NewExtractor()
	for _, text := range []string{"", "...", "\r\n\r\n", "the and of to"} {
		if _, _, err := e.Extract(text); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("text %q: expected ErrEmptyDocument, got %v", text, err)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"water", 2},
		{"beautiful", 3},
		{"table", 2},
		{"make", 1},
		{"rhythm", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestStripGutenberg(t *testing.T) {
	text := "Project Gutenberg header junk\n" +
		"*** START OF THE PROJECT GUTENBERG EBOOK MOBY DICK ***\n" +
		"Call me Ishmael.\n" +
		"*** END OF THE PROJECT GUTENBERG EBOOK MOBY DICK ***\n" +
		"License trailer junk\n"

	got := StripGutenberg(text)
	if strings.Contains(got, "header junk") || strings.Contains(got, "trailer junk") {
		t.Errorf("boilerplate not excised: %q", got)
	}
	if !strings.Contains(got, "Call me Ishmael.") {
		t.Errorf("contents lost: %q", got)
	}

	plain := "No markers in this one."
	if StripGutenberg(plain) != plain {
		t.Errorf("text without markers should pass through unchanged")
	}
}

func TestHTMLToText(t *testing.T) {
	page := `<html><head><title>skip</title><style>p{}</style></head>` +
		`<body><p>Call me Ishmael.</p><script>var x;</script></body></html>`

	text, err := HTMLToText(page)
	if err != nil {
		t.Fatalf("html to text: %v", err)
	}
	if !strings.Contains(text, "Call me Ishmael.") {
		t.Errorf("visible text missing: %q", text)
	}
	if strings.Contains(text, "var x") || strings.Contains(text, "skip") {
		t.Errorf("hidden content leaked: %q", text)
	}

	if !LooksLikeHTML(page) {
		t.Error("page should look like HTML")
	}
	if LooksLikeHTML("Call me Ishmael.") {
		t.Error("plain text should not look like HTML")
	}
}
