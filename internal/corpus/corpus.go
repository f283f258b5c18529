// Package corpus loads labeled document collections: an author-per-directory
// tree on disk, a previously saved features file, or texts downloaded from a
// manifest of public-domain sources.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/stylo/internal/cache"
	"github.com/ppiankov/stylo/internal/extract"
	"github.com/ppiankov/stylo/internal/model"
)

// Loader turns a corpus directory into a dataset. The directory layout is
// one subdirectory per author, one document file per text; the directory
// name becomes the class label.
type Loader struct {
	extractor *extract.Extractor
	cache     cache.Cache // nil disables caching
	verbose   io.Writer   // nil disables progress output
}

// NewLoader creates a loader. cache and verbose may be nil.
func NewLoader(extractor *extract.Extractor, c cache.Cache, verbose io.Writer) *Loader {
	return &Loader{extractor: extractor, cache: c, verbose: verbose}
}

// Load walks the corpus tree and extracts a feature vector per document.
// Authors are processed in sorted order so dataset order is deterministic.
func (l *Loader) Load(dir string) (model.Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var authors []string
	for _, entry := range entries {
		if entry.IsDir() {
			authors = append(authors, entry.Name())
		}
	}
	sort.Strings(authors)
	if len(authors) == 0 {
		return nil, fmt.Errorf("corpus %s contains no author directories", dir)
	}

	var ds model.Dataset
	for _, author := range authors {
		authorDir := filepath.Join(dir, author)
		files, err := os.ReadDir(authorDir)
		if err != nil {
			return nil, fmt.Errorf("read author dir %s: %w", author, err)
		}

		count := 0
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			path := filepath.Join(authorDir, file.Name())
			vec, err := l.loadDocument(path)
			if err != nil {
				return nil, fmt.Errorf("document %s: %w", path, err)
			}
			ds = append(ds, model.LabeledSample{
				Author:   author,
				Document: path,
				Features: vec,
			})
			count++
		}
		if count == 0 {
			return nil, fmt.Errorf("author %s has no documents", author)
		}
		if l.verbose != nil {
			fmt.Fprintf(l.verbose, "✓ %s: %d document(s)\n", author, count)
		}
	}
	return ds, nil
}

// loadDocument reads, cleans and extracts one document, going through the
// cache when one is configured. Cached vectors are keyed by the document
// contents, so edits invalidate naturally.
func (l *Loader) loadDocument(path string) (model.FeatureVector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	content := string(raw)

	var key string
	if l.cache != nil {
		key = cache.Key("features", content)
		if data, found := l.cache.Get(key); found {
			var vec model.FeatureVector
			if err := json.Unmarshal(data, &vec); err == nil && vec.Valid() {
				return vec, nil
			}
		}
	}

	if extract.LooksLikeHTML(content) {
		text, err := extract.HTMLToText(content)
		if err != nil {
			return nil, fmt.Errorf("html: %w", err)
		}
		content = text
	}
	content = extract.StripGutenberg(content)

	vec, _, err := l.extractor.Extract(content)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if data, err := json.Marshal(vec); err == nil {
			_ = l.cache.Set(key, data, 0)
		}
	}
	return vec, nil
}
