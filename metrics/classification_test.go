package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func newVec(values []float64) *mat.VecDense {
	if len(values) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(values), values)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "all correct",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 1, 0},
			want:  1.0,
		},
		{
			name:  "all wrong",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{1, 0, 0, 1},
			want:  0.0,
		},
		{
			name:  "three of four",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 0, 0},
			want:  0.75,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0},
			wantErr: true,
		},
		{
			name:    "empty",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := newVec(tt.yTrue)
			yPred := newVec(tt.yPred)

			got, err := Accuracy(yTrue, yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
			if !tt.wantErr && (got < 0 || got > 1) {
				t.Errorf("Accuracy() = %v, outside [0, 1]", got)
			}
		})
	}
}

func TestLogLoss(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		proba   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "confident and correct",
			yTrue: []float64{1, 0},
			proba: []float64{0.9, 0.1},
			want:  -math.Log(0.9),
		},
		{
			name:  "uninformative",
			yTrue: []float64{1, 0},
			proba: []float64{0.5, 0.5},
			want:  math.Log(2),
		},
		{
			name:  "clipped extreme probability",
			yTrue: []float64{1},
			proba: []float64{0},
			want:  -math.Log(1e-15),
		},
		{
			name:    "non-binary labels",
			yTrue:   []float64{0, 2},
			proba:   []float64{0.5, 0.5},
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{0, 1},
			proba:   []float64{0.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			proba := mat.NewVecDense(len(tt.proba), tt.proba)

			got, err := LogLoss(yTrue, proba)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LogLoss() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("LogLoss() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{1, 1, 1, 0, 0, 1})
	yPred := mat.NewVecDense(6, []float64{1, 1, 0, 0, 1, 1})

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix() error = %v", err)
	}

	if cm.NumClasses() != 2 {
		t.Fatalf("NumClasses() = %d, want 2", cm.NumClasses())
	}
	if cm.Total() != 6 {
		t.Errorf("Total() = %d, want 6", cm.Total())
	}

	// Rows are actual, columns predicted, classes ascending.
	if got := cm.Counts.At(0, 0); got != 1 {
		t.Errorf("true negatives = %v, want 1", got)
	}
	if got := cm.Counts.At(0, 1); got != 1 {
		t.Errorf("false positives = %v, want 1", got)
	}
	if got := cm.Counts.At(1, 0); got != 1 {
		t.Errorf("false negatives = %v, want 1", got)
	}
	if got := cm.Counts.At(1, 1); got != 3 {
		t.Errorf("true positives = %v, want 3", got)
	}
}

func TestConfusionMatrixSingleClass(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 1, 1})
	yPred := mat.NewVecDense(3, []float64{1, 1, 1})

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix() error = %v", err)
	}

	if cm.NumClasses() != 1 {
		t.Errorf("NumClasses() = %d, want 1", cm.NumClasses())
	}
	if cm.Total() != 3 {
		t.Errorf("Total() = %d, want 3", cm.Total())
	}
}

func TestConfusionMatrixErrors(t *testing.T) {
	if _, err := NewConfusionMatrix(&mat.VecDense{}, &mat.VecDense{}); err == nil {
		t.Error("empty vectors should fail")
	}

	yTrue := mat.NewVecDense(2, []float64{0, 1})
	yPred := mat.NewVecDense(1, []float64{0})
	if _, err := NewConfusionMatrix(yTrue, yPred); err == nil {
		t.Error("dimension mismatch should fail")
	}
}
