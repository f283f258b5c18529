// Package extract reduces a document to the fixed 108-dimension stylometric
// feature vector: legomena ratios, vocabulary richness, readability, and
// four per-sentence/per-word frequency distributions. Only shallow lexical
// statistics are computed; there is no semantic parsing.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/stylo/internal/model"
)

// ErrEmptyDocument indicates a document with no usable words after
// normalization.
var ErrEmptyDocument = errors.New("extract: document has no usable words")

var (
	// normalizeRe removes possessive 's, CRLF pairs, dash runs, quotes and
	// underscores before tokenization.
	normalizeRe = regexp.MustCompile(`'s|\r\n|-+|["_]`)
	// sentenceRe splits normalized text on sentence terminators.
	sentenceRe = regexp.MustCompile(`[.!?]+`)
	// wordRe matches words, keeping internal apostrophes.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}']+`)
)

// Extractor computes feature vectors. It is stateless apart from its word
// sets and safe for concurrent use.
type Extractor struct {
	stop map[string]struct{}
	pron map[string]struct{}
	conj map[string]struct{}
}

// NewExtractor creates an extractor with the embedded word lists.
func NewExtractor() *Extractor {
	return &Extractor{
		stop: toSet(stopWords),
		pron: toSet(nominativePronouns),
		conj: toSet(conjunctions),
	}
}

// DocumentStats carries the raw totals behind a vector, for diagnostics.
type DocumentStats struct {
	Sentences int
	Words     int
}

// Extract computes the feature vector for a document. The caller is expected
// to have stripped any Project Gutenberg boilerplate (StripGutenberg) and
// reduced HTML to text (HTMLToText) beforehand.
func (e *Extractor) Extract(text string) (model.FeatureVector, DocumentStats, error) {
	contents := normalizeRe.ReplaceAllString(strings.ToLower(text), " ")

	var (
		sentenceLens []int // words per sentence
		pronCounts   []int // nominative pronouns per sentence
		conjCounts   []int // conjunctions per sentence
		wordLens     []int // characters per word
		cleanWords   []string
		totalWords   int
		syllables    int
	)

	for _, sentence := range sentenceRe.Split(contents, -1) {
		words := wordRe.FindAllString(sentence, -1)
		if len(words) == 0 {
			continue
		}

		pron, conj := 0, 0
		for _, word := range words {
			syllables += countSyllables(word)
			wordLens = append(wordLens, len(word))
			if _, ok := e.pron[word]; ok {
				pron++
			}
			if _, ok := e.conj[word]; ok {
				conj++
			}
			if _, ok := e.stop[word]; !ok {
				cleanWords = append(cleanWords, word)
			}
		}
		totalWords += len(words)
		sentenceLens = append(sentenceLens, len(words))
		pronCounts = append(pronCounts, pron)
		conjCounts = append(conjCounts, conj)
	}

	stats := DocumentStats{Sentences: len(sentenceLens), Words: totalWords}
	if totalWords == 0 || len(cleanWords) == 0 {
		return nil, stats, fmt.Errorf("%w (%d raw words)", ErrEmptyDocument, totalWords)
	}

	// Legomena and richness over stop-word-filtered vocabulary.
	freq := make(map[string]int, len(cleanWords))
	for _, word := range cleanWords {
		freq[word]++
	}
	hapax, dis := 0, 0
	for _, n := range freq {
		switch n {
		case 1:
			hapax++
		case 2:
			dis++
		}
	}
	unique := len(freq)

	// Flesch reading ease, scaled to roughly [0, 1].
	asl := float64(totalWords) / float64(len(sentenceLens))
	asw := float64(syllables) / float64(totalWords)
	readability := (206.835 - 1.015*asl - 84.6*asw) / 100

	vec := make(model.FeatureVector, 0, model.NumFeatures)
	vec = append(vec,
		float64(hapax)/float64(unique),
		float64(dis)/float64(unique),
		float64(unique)/float64(len(cleanWords)),
		readability,
	)
	vec = append(vec, distribution(sentenceLens)...)
	vec = append(vec, distribution(wordLens)...)
	vec = append(vec, distribution(pronCounts)...)
	vec = append(vec, distribution(conjCounts)...)

	if !vec.Valid() {
		return nil, stats, fmt.Errorf("extract: produced %d dims, want %d", len(vec), model.NumFeatures)
	}
	return vec, stats, nil
}

// distribution turns per-unit counts into BinRange frequency bins for counts
// 1..BinRange plus a remainder bin. The remainder absorbs both overflow and
// zero counts, so each distribution sums to one.
func distribution(counts []int) []float64 {
	freq := make(map[int]int)
	for _, c := range counts {
		freq[c]++
	}

	total := float64(len(counts))
	bins := make([]float64, 0, model.DistWidth)
	sum := 0.0
	for k := 1; k <= model.BinRange; k++ {
		f := float64(freq[k]) / total
		bins = append(bins, f)
		sum += f
	}

	remainder := 1 - sum
	if remainder < 0 {
		remainder = 0 // float fuzz only
	}
	return append(bins, remainder)
}
