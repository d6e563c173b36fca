package pipeline

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// WriteResults flushes the accumulated run records to path as
// headerless CSV: run_index, accuracy_percentage, elapsed_seconds.
// The file is written once, at the end of all runs.
func WriteResults(path string, results []RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "pipeline: create results file")
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	for _, r := range results {
		record := []string{
			strconv.Itoa(r.Run),
			strconv.FormatFloat(r.Accuracy, 'g', -1, 64),
			strconv.FormatFloat(r.Elapsed, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "pipeline: write results row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "pipeline: flush results")
	}
	return nil
}
