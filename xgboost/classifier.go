package xgboost

import (
	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/core/model"
	"github.com/omarzanji/parkinsons-detection/metrics"
	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Classifier is a scikit-learn style wrapper around the boosting trainer
// for binary {0,1} targets.
type Classifier struct {
	model.BaseEstimator

	// Params are the training hyperparameters.
	Params TrainingParams

	// Model is the fitted ensemble, nil before Fit.
	Model *Model

	history map[string][]float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithNumRounds sets the number of boosting rounds.
func WithNumRounds(n int) Option {
	return func(c *Classifier) {
		c.Params.NumRounds = n
	}
}

// WithLearningRate sets the shrinkage rate.
func WithLearningRate(lr float64) Option {
	return func(c *Classifier) {
		c.Params.LearningRate = lr
	}
}

// WithMaxDepth sets the tree depth limit.
func WithMaxDepth(depth int) Option {
	return func(c *Classifier) {
		c.Params.MaxDepth = depth
	}
}

// WithMinChildSamples sets the minimum rows per leaf.
func WithMinChildSamples(n int) Option {
	return func(c *Classifier) {
		c.Params.MinChildSamples = n
	}
}

// WithLambda sets the L2 regularization on leaf values.
func WithLambda(lambda float64) Option {
	return func(c *Classifier) {
		c.Params.Lambda = lambda
	}
}

// WithVerbosity sets the progress-logging level.
func WithVerbosity(v int) Option {
	return func(c *Classifier) {
		c.Params.Verbosity = v
	}
}

// NewClassifier creates a classifier with the logistic objective and
// XGBoost-style defaults.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		Params: TrainingParams{Objective: BinaryLogistic},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FitOption configures a single Fit call.
type FitOption func(*fitConfig)

type fitConfig struct {
	evalSets []struct {
		name string
		X    *mat.Dense
		y    *mat.VecDense
	}
	callbacks    []Callback
	featureNames []string
}

// WithEvalSet tracks per-iteration log-loss on a named dataset during
// fitting. Results are available from EvalsResult under
// "<name>-logloss".
func WithEvalSet(name string, X *mat.Dense, y *mat.VecDense) FitOption {
	return func(fc *fitConfig) {
		fc.evalSets = append(fc.evalSets, struct {
			name string
			X    *mat.Dense
			y    *mat.VecDense
		}{name, X, y})
	}
}

// WithCallbacks attaches training callbacks to the Fit call.
func WithCallbacks(callbacks ...Callback) FitOption {
	return func(fc *fitConfig) {
		fc.callbacks = append(fc.callbacks, callbacks...)
	}
}

// WithFeatureNames labels the feature columns on the fitted model.
func WithFeatureNames(names []string) FitOption {
	return func(fc *fitConfig) {
		fc.featureNames = names
	}
}

// Fit trains the classifier. y must contain only 0 and 1.
func (c *Classifier) Fit(X *mat.Dense, y *mat.VecDense, opts ...FitOption) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError("Classifier.Fit", "targets must be binary")
		}
	}

	fc := &fitConfig{}
	for _, opt := range opts {
		opt(fc)
	}

	trainer := NewTrainer(c.Params)
	for _, es := range fc.evalSets {
		trainer.WithEvalSet(es.name, es.X, es.y)
	}
	if len(fc.callbacks) > 0 {
		trainer.WithCallbacks(fc.callbacks...)
	}
	if fc.featureNames != nil {
		trainer.WithFeatureNames(fc.featureNames)
	}

	if err := trainer.Fit(X, y); err != nil {
		return err
	}

	c.Model = trainer.Model()
	c.history = trainer.History()
	c.SetFitted()
	return nil
}

// Predict returns the 0/1 class of each sample at the 0.5 probability
// threshold.
func (c *Classifier) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("Classifier", "Predict")
	}

	proba, err := c.Model.PredictProba(X)
	if err != nil {
		return nil, err
	}
	for i := 0; i < proba.Len(); i++ {
		if proba.AtVec(i) >= 0.5 {
			proba.SetVec(i, 1)
		} else {
			proba.SetVec(i, 0)
		}
	}
	return proba, nil
}

// PredictProba returns an n x 2 matrix with the probability of class 0
// and class 1 per row.
func (c *Classifier) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("Classifier", "PredictProba")
	}

	pos, err := c.Model.PredictProba(X)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(pos.Len(), 2, nil)
	for i := 0; i < pos.Len(); i++ {
		p := pos.AtVec(i)
		out.Set(i, 0, 1-p)
		out.Set(i, 1, p)
	}
	return out, nil
}

// Score returns the accuracy on (X, y) as a fraction in [0, 1].
func (c *Classifier) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}

// EvalsResult returns the evaluation history recorded during Fit,
// keyed "<name>-logloss", one value per boosting iteration.
func (c *Classifier) EvalsResult() map[string][]float64 {
	return c.history
}

// FeatureImportance returns normalized per-feature importance.
// kind is "split" or "gain".
func (c *Classifier) FeatureImportance(kind string) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("Classifier", "FeatureImportance")
	}
	return c.Model.FeatureImportance(kind)
}
