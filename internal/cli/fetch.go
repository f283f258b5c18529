package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/stylo/internal/corpus"
)

var (
	fetchDest      string
	fetchUserAgent string
	fetchTimeout   time.Duration
	fetchMaxBytes  int64
	fetchRPS       float64
	fetchNoCache   bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <manifest>",
	Short: "Download corpus texts listed in a manifest",
	Long: `Fetch downloads public-domain texts into a corpus directory tree.
The manifest lists one source per line as "author<TAB>url"; downloaded
files land in <dest>/<author>/. Downloads respect robots.txt and are
rate limited per host.

Example:
  stylo fetch manifest.tsv --dest ./corpus`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchDest, "dest", "corpus", "destination corpus directory")
	fetchCmd.Flags().StringVar(&fetchUserAgent, "ua", "", "HTTP User-Agent (default from config)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 0, "per-request timeout (default from config)")
	fetchCmd.Flags().Int64Var(&fetchMaxBytes, "max-bytes", 0, "max response bytes to read (default from config)")
	fetchCmd.Flags().Float64Var(&fetchRPS, "rps", 0, "per-host requests per second (default from config)")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "disable the download cache (force fresh fetch)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchUserAgent != "" {
		cfg.Fetch.UserAgent = fetchUserAgent
	}
	if fetchTimeout > 0 {
		cfg.Fetch.Timeout = fetchTimeout
	}
	if fetchMaxBytes > 0 {
		cfg.Fetch.MaxBodyBytes = fetchMaxBytes
	}
	if fetchRPS > 0 {
		cfg.Fetch.RequestsPerSec = fetchRPS
	}
	if fetchNoCache {
		cfg.Cache.Enabled = false
	}

	entries, err := corpus.ReadManifest(args[0])
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "fetching %d source(s) into %s\n", len(entries), fetchDest)
	}

	c, err := buildCache(cfg)
	if err != nil {
		return err
	}

	fetcher := corpus.NewFetcher(cfg.Fetch, c)
	results := fetcher.FetchAll(context.Background(), entries, fetchDest)

	fetched, failed := 0, 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s (%s): %v\n", r.Entry.URL, r.Entry.Author, r.Error)
			continue
		}
		fetched++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", r.Entry.URL, r.Path)
		}
	}

	fmt.Printf("✓ Fetched %d of %d source(s)\n", fetched, len(results))
	if failed > 0 {
		return fmt.Errorf("%d source(s) failed", failed)
	}
	return nil
}
