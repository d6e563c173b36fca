// Package parkinsons detects Parkinson's disease from voice recordings
// with a gradient-boosted decision tree classifier.
//
// The repository implements the full experiment as a batch pipeline:
// load the UCI Parkinsons dataset, scale the acoustic features to
// [-1, 1], draw a random 85/15 train/test split, fit an XGBoost-style
// classifier for 100 rounds while tracking log-loss on both subsets,
// then report the test accuracy, render the learning curve and
// confusion matrix as PNG charts, and append the run results to
// xgboost_results.csv.
//
// # Quick Start
//
// Place the dataset at data/parkinsons.data (see data/README.md) and
// run the detector:
//
//	go run ./cmd/parkinsons
//
// # Packages
//
//   - dataset: CSV loading and feature/label extraction
//   - preprocessing: min-max scaling and train/test splitting
//   - xgboost: the boosted-tree trainer, classifier and persistence
//   - metrics: accuracy, log-loss and the confusion matrix
//   - report: chart rendering
//   - pipeline: the end-to-end experiment driver
package parkinsons
