// Command parkinsons trains a gradient-boosted classifier on the UCI
// Parkinsons voice-measurement dataset, reports test accuracy, renders
// a learning curve and confusion-matrix heat map per run, and appends
// one result row per run to xgboost_results.csv.
package main

import (
	"fmt"
	"os"

	"github.com/omarzanji/parkinsons-detection/pipeline"
)

func main() {
	cfg := pipeline.DefaultConfig()

	p := pipeline.New(cfg)

	// A missing or unreadable dataset is a fatal precondition, not a
	// retryable error.
	table, err := p.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s not found\n", cfg.DataPath)
		os.Exit(1)
	}

	if _, err := p.RunAll(table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
