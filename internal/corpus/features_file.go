package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ppiankov/stylo/internal/model"
)

// The features file is a TSV snapshot of an extracted dataset:
// author <TAB> class index <TAB> comma-joined feature values.
// Saving it lets repeated runs skip extraction entirely.

// SaveFeatures writes the dataset to path.
func SaveFeatures(path string, ds model.Dataset) error {
	classes := ds.Classes()
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create features file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, sample := range ds {
		values := make([]string, len(sample.Features))
		for i, v := range sample.Features {
			values[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", sample.Author, index[sample.Author], strings.Join(values, ",")); err != nil {
			return fmt.Errorf("write features file: %w", err)
		}
	}
	return w.Flush()
}

// LoadFeatures reads a previously saved features file. Every row must carry
// exactly the schema's dimension count.
func LoadFeatures(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open features file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var ds model.Dataset
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}

		fields := strings.Split(row, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("features file line %d: %d fields, want 3", line, len(fields))
		}

		parts := strings.Split(fields[2], ",")
		if len(parts) != model.NumFeatures {
			return nil, fmt.Errorf("features file line %d: %d dims, want %d", line, len(parts), model.NumFeatures)
		}
		vec := make(model.FeatureVector, len(parts))
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("features file line %d dim %d: %w", line, i, err)
			}
			vec[i] = v
		}

		ds = append(ds, model.LabeledSample{Author: fields[0], Features: vec})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan features file: %w", err)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("features file %s is empty", path)
	}
	return ds, nil
}
