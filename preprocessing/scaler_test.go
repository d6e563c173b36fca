package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMinMaxScalerMapsRangeBounds(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		10, -3,
		20, 0,
		15, 5,
		30, 1,
	})

	scaler := NewMinMaxScaler([2]float64{-1, 1})
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			v := scaled.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if math.Abs(lo-(-1)) > 1e-9 {
			t.Errorf("column %d: min = %v, want -1", j, lo)
		}
		if math.Abs(hi-1) > 1e-9 {
			t.Errorf("column %d: max = %v, want 1", j, hi)
		}
	}
}

func TestMinMaxScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	scaler := NewMinMaxScaler([2]float64{-1, 1})
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// A constant column must not blow up; all values map to the
	// lower bound.
	for i := 0; i < 3; i++ {
		if v := scaled.At(i, 0); math.Abs(v-(-1)) > 1e-9 {
			t.Errorf("row %d = %v, want -1", i, v)
		}
	}
}

func TestMinMaxScalerInverseRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, 100,
		2.5, 250,
		9.0, 175,
	})

	scaler := NewMinMaxScaler([2]float64{-1, 1})
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	if !mat.EqualApprox(X, back, 1e-9) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", mat.Formatted(back), mat.Formatted(X))
	}
}

func TestMinMaxScalerNotFitted(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{-1, 1})
	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit() should fail")
	}
}

func TestMinMaxScalerDimensionMismatch(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{-1, 1})
	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if _, err := scaler.Transform(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Transform() with wrong column count should fail")
	}
}

func TestMinMaxScalerEmptyData(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{-1, 1})
	if err := scaler.Fit(&mat.Dense{}); err == nil {
		t.Error("Fit() with empty data should fail")
	}
}
