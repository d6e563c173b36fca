package pipeline

// Config enumerates everything a run depends on. The defaults reproduce
// the reference experiment: 85/15 split, 100 boosting rounds, fresh
// random partition per run.
type Config struct {
	// DataPath is the dataset CSV. The file must exist at process
	// start; a missing file is fatal.
	DataPath string

	// ResultsPath is the output CSV: one headerless row per run with
	// run index, accuracy percentage and elapsed seconds.
	ResultsPath string

	// LabelColumn is the binary target column.
	LabelColumn string

	// FeatureRange is the min-max scaling target range.
	FeatureRange [2]float64

	// TestFraction of rows held out per run.
	TestFraction float64

	// NumRounds is the number of boosting iterations.
	NumRounds int

	// Seed controls the split: negative means a time-based seed, so
	// every run draws a different partition; non-negative seeds are
	// reproducible.
	Seed int64

	// NumRuns repeats the whole pipeline, accumulating result rows.
	NumRuns int

	// Verbosity > 0 enables per-iteration evaluation printing.
	Verbosity int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		DataPath:     "data/parkinsons.data",
		ResultsPath:  "xgboost_results.csv",
		LabelColumn:  "status",
		FeatureRange: [2]float64{-1, 1},
		TestFraction: 0.15,
		NumRounds:    100,
		Seed:         -1,
		NumRuns:      1,
	}
}
