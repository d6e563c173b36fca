package xgboost

import (
	"math"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Objective names follow XGBoost's convention.
const (
	BinaryLogistic  = "binary:logistic"
	RegSquaredError = "reg:squarederror"
)

// Objective supplies the per-sample derivatives and loss for a training
// target. Predictions passed in are raw (untransformed) scores.
type Objective interface {
	// Name returns the canonical objective name.
	Name() string

	// Gradient is the first derivative of the loss w.r.t. the raw score.
	Gradient(pred, target float64) float64

	// Hessian is the second derivative of the loss w.r.t. the raw score.
	Hessian(pred, target float64) float64

	// Loss is the per-sample loss at the raw score.
	Loss(pred, target float64) float64

	// InitScore is the constant raw score the ensemble starts from.
	InitScore(targets []float64) float64

	// Transform maps a raw score to the output space (probability for
	// classification, identity for regression).
	Transform(raw float64) float64
}

// NewObjective resolves an objective name.
func NewObjective(name string) (Objective, error) {
	switch name {
	case BinaryLogistic, "binary", "logistic":
		return &logisticObjective{}, nil
	case RegSquaredError, "regression", "l2":
		return &squaredErrorObjective{}, nil
	default:
		return nil, errors.Newf("xgboost: unknown objective %q", name)
	}
}

// logisticObjective is binary cross-entropy on sigmoid-transformed
// scores. Targets must be 0 or 1.
type logisticObjective struct{}

func (o *logisticObjective) Name() string { return BinaryLogistic }

func (o *logisticObjective) Gradient(pred, target float64) float64 {
	return sigmoid(pred) - target
}

func (o *logisticObjective) Hessian(pred, target float64) float64 {
	p := sigmoid(pred)
	h := p * (1 - p)
	// Guard against vanishing curvature at saturated predictions.
	if h < 1e-16 {
		h = 1e-16
	}
	return h
}

func (o *logisticObjective) Loss(pred, target float64) float64 {
	const eps = 1e-15
	p := math.Min(math.Max(sigmoid(pred), eps), 1-eps)
	return -(target*math.Log(p) + (1-target)*math.Log(1-p))
}

func (o *logisticObjective) InitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	pos := 0.0
	for _, t := range targets {
		pos += t
	}
	rate := pos / float64(len(targets))
	if rate < 1e-3 {
		rate = 1e-3
	}
	if rate > 1-1e-3 {
		rate = 1 - 1e-3
	}
	return math.Log(rate / (1 - rate))
}

func (o *logisticObjective) Transform(raw float64) float64 {
	return sigmoid(raw)
}

// squaredErrorObjective is plain L2 regression.
type squaredErrorObjective struct{}

func (o *squaredErrorObjective) Name() string { return RegSquaredError }

func (o *squaredErrorObjective) Gradient(pred, target float64) float64 {
	return pred - target
}

func (o *squaredErrorObjective) Hessian(pred, target float64) float64 {
	return 1.0
}

func (o *squaredErrorObjective) Loss(pred, target float64) float64 {
	diff := pred - target
	return 0.5 * diff * diff
}

func (o *squaredErrorObjective) InitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range targets {
		sum += t
	}
	return sum / float64(len(targets))
}

func (o *squaredErrorObjective) Transform(raw float64) float64 {
	return raw
}
