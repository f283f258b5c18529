package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/stylo/internal/corpus"
	"github.com/ppiankov/stylo/internal/extract"
)

var featuresOut string

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features <corpus-dir>",
	Short: "Extract features and save them as a TSV snapshot",
	Long: `Features extracts the stylometric vector of every document in the
corpus and writes the labeled vectors to a TSV file. Later runs can load
the snapshot with 'stylo run --features' and skip extraction entirely.

Example:
  stylo features ./corpus --out features.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVar(&featuresOut, "out", "features.tsv", "output TSV path")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := buildCache(cfg)
	if err != nil {
		return err
	}

	var progress io.Writer
	if verbose {
		progress = os.Stderr
	}

	ds, err := corpus.NewLoader(extract.NewExtractor(), c, progress).Load(args[0])
	if err != nil {
		return err
	}

	if err := corpus.SaveFeatures(featuresOut, ds); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %d feature vector(s) to %s\n", ds.Len(), featuresOut)
	return nil
}
