package xgboost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjective(t *testing.T) {
	for _, name := range []string{BinaryLogistic, "binary", "logistic"} {
		obj, err := NewObjective(name)
		require.NoError(t, err)
		assert.Equal(t, BinaryLogistic, obj.Name())
	}

	for _, name := range []string{RegSquaredError, "regression", "l2"} {
		obj, err := NewObjective(name)
		require.NoError(t, err)
		assert.Equal(t, RegSquaredError, obj.Name())
	}

	_, err := NewObjective("multi:softmax")
	assert.Error(t, err)
}

func TestLogisticGradientHessian(t *testing.T) {
	obj, err := NewObjective(BinaryLogistic)
	require.NoError(t, err)

	// At raw score 0 the predicted probability is 0.5.
	assert.InDelta(t, 0.5, obj.Gradient(0, 0), 1e-12)
	assert.InDelta(t, -0.5, obj.Gradient(0, 1), 1e-12)
	assert.InDelta(t, 0.25, obj.Hessian(0, 1), 1e-12)

	// The gradient vanishes as the prediction approaches the target.
	assert.Less(t, math.Abs(obj.Gradient(10, 1)), 1e-4)

	// The hessian stays strictly positive even at saturation.
	assert.Greater(t, obj.Hessian(100, 1), 0.0)
	assert.Greater(t, obj.Hessian(-100, 0), 0.0)
}

func TestLogisticLoss(t *testing.T) {
	obj, err := NewObjective(BinaryLogistic)
	require.NoError(t, err)

	assert.InDelta(t, math.Log(2), obj.Loss(0, 1), 1e-12)
	assert.InDelta(t, math.Log(2), obj.Loss(0, 0), 1e-12)

	// Confident correct predictions cost almost nothing.
	assert.Less(t, obj.Loss(8, 1), 1e-3)
	// Confident wrong predictions are expensive but finite.
	wrong := obj.Loss(-50, 1)
	assert.Greater(t, wrong, 1.0)
	assert.False(t, math.IsInf(wrong, 1))
}

func TestLogisticInitScore(t *testing.T) {
	obj, err := NewObjective(BinaryLogistic)
	require.NoError(t, err)

	// Balanced labels start at log-odds 0.
	assert.InDelta(t, 0, obj.InitScore([]float64{0, 1, 0, 1}), 1e-12)

	// 75% positives start at log(3).
	assert.InDelta(t, math.Log(3), obj.InitScore([]float64{1, 1, 1, 0}), 1e-12)

	// Degenerate label sets are clamped to a finite score.
	allPos := obj.InitScore([]float64{1, 1, 1})
	assert.False(t, math.IsInf(allPos, 1))
	assert.InDelta(t, math.Log((1-1e-3)/1e-3), allPos, 1e-9)
}

func TestLogisticTransform(t *testing.T) {
	obj, err := NewObjective(BinaryLogistic)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, obj.Transform(0), 1e-12)
	assert.Greater(t, obj.Transform(3), 0.9)
	assert.Less(t, obj.Transform(-3), 0.1)
}

func TestSquaredErrorObjective(t *testing.T) {
	obj, err := NewObjective(RegSquaredError)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, obj.Gradient(5, 3), 1e-12)
	assert.InDelta(t, 1.0, obj.Hessian(5, 3), 1e-12)
	assert.InDelta(t, 2.0, obj.Loss(5, 3), 1e-12)
	assert.InDelta(t, 2.5, obj.InitScore([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 7.0, obj.Transform(7), 1e-12)
}
