// Package pipeline wires the four stages of a training run: load the
// dataset, scale and split it, fit the boosted classifier, and evaluate
// and report the results.
package pipeline

import (
	"fmt"
	"time"

	"github.com/omarzanji/parkinsons-detection/dataset"
	"github.com/omarzanji/parkinsons-detection/metrics"
	"github.com/omarzanji/parkinsons-detection/pkg/errors"
	"github.com/omarzanji/parkinsons-detection/pkg/log"
	"github.com/omarzanji/parkinsons-detection/preprocessing"
	"github.com/omarzanji/parkinsons-detection/report"
	"github.com/omarzanji/parkinsons-detection/xgboost"
)

// RunResult is the persisted outcome of one run.
type RunResult struct {
	// Run is the zero-based run index.
	Run int

	// Accuracy is the test-set accuracy as a percentage.
	Accuracy float64

	// Elapsed is the wall-clock training-and-evaluation time in
	// seconds.
	Elapsed float64
}

// Pipeline executes runs against a loaded dataset. Stages run strictly
// forward with no retry: any stage error propagates to the caller.
type Pipeline struct {
	cfg      Config
	reporter report.Reporter
	logger   log.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithReporter swaps the artifact reporter. The default renders PNG
// files into the working directory.
func WithReporter(r report.Reporter) PipelineOption {
	return func(p *Pipeline) {
		p.reporter = r
	}
}

// New creates a pipeline for cfg.
func New(cfg Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		reporter: report.NewPNGReporter("."),
		logger:   log.GetLoggerWithName("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads the dataset once per process. A failure here is fatal and
// non-recoverable; the driver prints the message and exits non-zero.
func (p *Pipeline) Load() (*dataset.Table, error) {
	table, err := dataset.Load(p.cfg.DataPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("dataset loaded",
		log.OperationKey, "load",
		log.SamplesKey, table.NumRows(),
		log.FeaturesKey, table.NumColumns()-1)
	return table, nil
}

// Run executes one pass over the loaded table: preprocess, train,
// evaluate, report. The split is drawn fresh from the configured seed
// policy on every call.
func (p *Pipeline) Run(table *dataset.Table, run int) (RunResult, error) {
	split, featureNames, err := p.preprocess(table)
	if err != nil {
		return RunResult{}, err
	}

	start := time.Now()

	clf, err := p.train(split, featureNames)
	if err != nil {
		return RunResult{}, err
	}

	accuracy, matrix, err := p.evaluate(clf, split)
	if err != nil {
		return RunResult{}, err
	}

	elapsed := time.Since(start).Seconds()

	fmt.Printf("Accuracy: %d\n", int(accuracy))
	p.logger.Info("run finished",
		log.RunKey, run,
		log.AccuracyKey, accuracy,
		log.DurationSecondsKey, elapsed)

	art := report.Artifacts{
		Curves: []report.Curve{
			{Name: "train", Loss: clf.EvalsResult()["train-logloss"]},
			{Name: "test", Loss: clf.EvalsResult()["test-logloss"]},
		},
		Matrix: matrix,
	}
	if err := p.reporter.Report(run, art); err != nil {
		return RunResult{}, err
	}

	return RunResult{Run: run, Accuracy: accuracy, Elapsed: elapsed}, nil
}

// RunAll executes every configured run against a loaded table and
// flushes the accumulated result rows to the results file.
func (p *Pipeline) RunAll(table *dataset.Table) ([]RunResult, error) {
	results := make([]RunResult, 0, p.cfg.NumRuns)
	for run := 0; run < p.cfg.NumRuns; run++ {
		result, err := p.Run(table, run)
		if err != nil {
			return nil, errors.Wrapf(err, "run %d", run)
		}
		results = append(results, result)
	}

	if err := WriteResults(p.cfg.ResultsPath, results); err != nil {
		return nil, err
	}
	return results, nil
}

// preprocess builds the scaled feature matrix and draws the train/test
// partition. Scaling is fitted on the full matrix before splitting,
// matching the reference experiment.
func (p *Pipeline) preprocess(table *dataset.Table) (*preprocessing.Split, []string, error) {
	X, err := table.Features(p.cfg.LabelColumn)
	if err != nil {
		return nil, nil, err
	}
	y, err := table.Labels(p.cfg.LabelColumn)
	if err != nil {
		return nil, nil, err
	}
	featureNames, err := table.FeatureNames(p.cfg.LabelColumn)
	if err != nil {
		return nil, nil, err
	}

	scaler := preprocessing.NewMinMaxScaler(p.cfg.FeatureRange)
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}

	split, err := preprocessing.TrainTestSplit(XScaled, y, p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return nil, nil, err
	}
	return split, featureNames, nil
}

// train fits the boosted classifier, tracking log-loss on the train and
// test subsets per iteration.
func (p *Pipeline) train(split *preprocessing.Split, featureNames []string) (*xgboost.Classifier, error) {
	clf := xgboost.NewClassifier(
		xgboost.WithNumRounds(p.cfg.NumRounds),
		xgboost.WithVerbosity(p.cfg.Verbosity),
	)

	fitOpts := []xgboost.FitOption{
		xgboost.WithEvalSet("train", split.XTrain, split.YTrain),
		xgboost.WithEvalSet("test", split.XTest, split.YTest),
		xgboost.WithFeatureNames(featureNames),
	}
	if p.cfg.Verbosity > 0 {
		fitOpts = append(fitOpts, xgboost.WithCallbacks(xgboost.PrintEvaluation(1)))
	}

	if err := clf.Fit(split.XTrain, split.YTrain, fitOpts...); err != nil {
		return nil, err
	}
	return clf, nil
}

// evaluate computes the accuracy percentage and confusion matrix over
// the held-out rows.
func (p *Pipeline) evaluate(clf *xgboost.Classifier, split *preprocessing.Split) (float64, *metrics.ConfusionMatrix, error) {
	pred, err := clf.Predict(split.XTest)
	if err != nil {
		return 0, nil, err
	}

	accuracy, err := metrics.Accuracy(split.YTest, pred)
	if err != nil {
		return 0, nil, err
	}

	matrix, err := metrics.NewConfusionMatrix(split.YTest, pred)
	if err != nil {
		return 0, nil, err
	}
	return accuracy * 100, matrix, nil
}
