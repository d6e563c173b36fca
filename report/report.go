// Package report renders the human-reviewable artifacts of a training
// run: the learning curve and the confusion-matrix heat map.
//
// Computation and rendering are deliberately separated: the pipeline
// produces Artifacts, and a Reporter decides what to do with them, so
// headless runs can swap in a no-op without touching the pipeline.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/omarzanji/parkinsons-detection/metrics"
	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Curve is a named per-iteration loss sequence.
type Curve struct {
	Name string
	Loss []float64
}

// Artifacts are the displayable results of one training run.
type Artifacts struct {
	Curves []Curve
	Matrix *metrics.ConfusionMatrix
}

// Reporter renders the artifacts of a run.
type Reporter interface {
	Report(run int, art Artifacts) error
}

// NopReporter discards artifacts. Used in non-interactive contexts and
// in tests.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(int, Artifacts) error { return nil }

// PNGReporter writes the two charts as PNG files under Dir, suffixed
// with the run index.
type PNGReporter struct {
	Dir string
}

// NewPNGReporter creates a reporter writing into dir.
func NewPNGReporter(dir string) *PNGReporter {
	return &PNGReporter{Dir: dir}
}

// Report implements Reporter.
func (r *PNGReporter) Report(run int, art Artifacts) error {
	if err := os.MkdirAll(r.Dir, 0o750); err != nil {
		return errors.Wrap(err, "report: create output dir")
	}

	curvePath := filepath.Join(r.Dir, fmt.Sprintf("learning_curve_run%d.png", run))
	if err := saveLearningCurve(art.Curves, curvePath); err != nil {
		return err
	}

	matrixPath := filepath.Join(r.Dir, fmt.Sprintf("confusion_matrix_run%d.png", run))
	return saveConfusionMatrix(art.Matrix, matrixPath)
}

// saveLearningCurve plots each loss sequence against the iteration
// index with labeled axes and a legend.
func saveLearningCurve(curves []Curve, path string) error {
	p := plot.New()
	p.Title.Text = "XGBoost Learning Curves"
	p.X.Label.Text = "Iterations"
	p.Y.Label.Text = "Loss"

	for i, curve := range curves {
		xys := make(plotter.XYs, len(curve.Loss))
		for iter, loss := range curve.Loss {
			xys[iter].X = float64(iter)
			xys[iter].Y = loss
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return errors.Wrap(err, "report: learning curve line")
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(curve.Name, line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report: save learning curve")
	}
	return nil
}

// saveConfusionMatrix renders the counts as a heat map with one
// annotated cell per (actual, predicted) pair.
func saveConfusionMatrix(cm *metrics.ConfusionMatrix, path string) error {
	if cm == nil {
		return errors.New("report: nil confusion matrix")
	}

	p := plot.New()
	p.Title.Text = "XGBoost Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	grid := &countGrid{cm: cm}
	heat := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(64))
	p.Add(heat)

	labels, err := cellLabels(cm)
	if err != nil {
		return err
	}
	p.Add(labels)

	ticks := classTicks(cm.Classes)
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report: save confusion matrix")
	}
	return nil
}

// cellLabels annotates each cell with its count.
func cellLabels(cm *metrics.ConfusionMatrix) (*plotter.Labels, error) {
	k := cm.NumClasses()
	xyl := plotter.XYLabels{}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(j), Y: float64(i)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf("%d", int(cm.Counts.At(i, j))))
		}
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, errors.Wrap(err, "report: confusion matrix labels")
	}
	return labels, nil
}

// classTicks places one tick per class value.
func classTicks(classes []float64) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(classes))
	for i, v := range classes {
		ticks[i] = plot.Tick{Value: float64(i), Label: fmt.Sprintf("%g", v)}
	}
	return plot.ConstantTicks(ticks)
}

// countGrid adapts a confusion matrix to plotter.GridXYZ. Column index
// is the predicted class, row index the actual class.
type countGrid struct {
	cm *metrics.ConfusionMatrix
}

func (g *countGrid) Dims() (int, int) {
	k := g.cm.NumClasses()
	return k, k
}

func (g *countGrid) Z(c, r int) float64 { return g.cm.Counts.At(r, c) }
func (g *countGrid) X(c int) float64    { return float64(c) }
func (g *countGrid) Y(r int) float64    { return float64(r) }
