package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/stylo/internal/cache"
	"github.com/ppiankov/stylo/internal/model"
	"github.com/ppiankov/stylo/internal/util"
	"github.com/ppiankov/stylo/internal/worker"
)

// ManifestEntry is one corpus source: a public-domain text attributed to an
// author.
type ManifestEntry struct {
	Author string
	URL    string
}

// ReadManifest parses a manifest file: one "author<TAB>url" per line, with
// blank lines and # comments skipped and duplicate URLs dropped.
func ReadManifest(path string) ([]ManifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []ManifestEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.SplitN(text, "\t", 2)
		if len(fields) != 2 || strings.TrimSpace(fields[0]) == "" || strings.TrimSpace(fields[1]) == "" {
			return nil, fmt.Errorf("manifest line %d: want author<TAB>url", line)
		}

		entry := ManifestEntry{
			Author: strings.TrimSpace(fields[0]),
			URL:    strings.TrimSpace(fields[1]),
		}
		if !seen[entry.URL] {
			seen[entry.URL] = true
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return entries, nil
}

// Fetcher downloads corpus texts politely: robots.txt compliance, per-host
// rate limiting, bounded body reads and a cache in front of the network.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
	workers    int
}

// NewFetcher creates a fetcher from the fetch configuration. c may be nil.
func NewFetcher(cfg model.FetchConfig, c cache.Cache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RequestsPerSec, cfg.Burst),
		cache:     c,
		workers:   cfg.Concurrency,
	}
}

// FetchResult is the outcome of one download.
type FetchResult struct {
	Entry ManifestEntry
	Path  string // destination file on success
	Error error
}

// Err satisfies worker.Result.
func (r *FetchResult) Err() error { return r.Error }

// fetchJob downloads one manifest entry.
type fetchJob struct {
	fetcher *Fetcher
	entry   ManifestEntry
	destDir string
}

// Execute runs the download.
func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	path, err := j.fetcher.fetchOne(ctx, j.entry, j.destDir)
	return &FetchResult{Entry: j.entry, Path: path, Error: err}
}

// FetchAll downloads every manifest entry into destDir/author/. Failures
// are per-entry: one dead source does not abort the batch.
func (f *Fetcher) FetchAll(ctx context.Context, entries []ManifestEntry, destDir string) []*FetchResult {
	if len(entries) == 0 {
		return nil
	}

	jobs := make([]worker.Job, len(entries))
	for i, entry := range entries {
		jobs[i] = &fetchJob{fetcher: f, entry: entry, destDir: destDir}
	}

	results, _ := worker.Run(f.workers, jobs)
	out := make([]*FetchResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*FetchResult))
	}
	return out
}

// fetchOne retrieves a single text, honoring robots.txt and the per-host
// rate limit, and writes it under destDir/author/.
func (f *Fetcher) fetchOne(ctx context.Context, entry ManifestEntry, destDir string) (string, error) {
	dest := filepath.Join(destDir, sanitize(entry.Author), fileNameFor(entry.URL))

	if f.cache != nil {
		if data, found := f.cache.Get(cache.Key("text", entry.URL)); found {
			return dest, writeFile(dest, data)
		}
	}

	allowed, delay, err := f.robots.CanFetch(ctx, entry.URL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", entry.URL)
	}

	if err := f.limiter.Wait(ctx, entry.URL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,text/html;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.Key("text", entry.URL), data, 0)
	}
	return dest, writeFile(dest, data)
}

func writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create author dir: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// fileNameFor derives a destination file name from the URL path.
func fileNameFor(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return sanitize(rawURL) + ".txt"
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return sanitize(rawURL) + ".txt"
	}
	return sanitize(name)
}

// sanitize keeps file and directory names filesystem-safe.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
