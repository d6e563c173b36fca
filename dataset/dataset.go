// Package dataset loads the voice-measurement table used by the pipeline.
//
// The expected format is the UCI Parkinsons data set: a CSV file with a
// header row, a non-numeric subject identifier in the first column
// ("name"), float feature columns, and a binary "status" label column.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Table is an in-memory copy of the dataset. Rows are subjects, columns
// are named numeric measurements. The identifier column is kept apart
// from the numeric block so it can never leak into the feature matrix.
type Table struct {
	// IDColumn is the header name of the identifier column.
	IDColumn string

	// IDs holds the identifier value of each row.
	IDs []string

	// Columns are the numeric column names, in file order.
	Columns []string

	// data is the numeric block, row-major, len(IDs) x len(Columns).
	data *mat.Dense
}

// Load reads a CSV file with a header row into a Table. The first column
// is treated as the subject identifier; every other column must parse as
// a float64. A missing or malformed file is a fatal precondition for the
// pipeline, so callers are expected to terminate on error.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError(path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.NewDataError(path, err)
	}
	if len(records) < 2 {
		return nil, errors.NewDataError(path, errors.ErrEmptyData)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, errors.NewDataError(path, errors.Newf("need an identifier column and at least one numeric column, got %d columns", len(header)))
	}

	t := &Table{
		IDColumn: header[0],
		Columns:  append([]string(nil), header[1:]...),
	}

	nRows := len(records) - 1
	nCols := len(t.Columns)
	values := make([]float64, 0, nRows*nCols)
	t.IDs = make([]string, 0, nRows)

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.NewDataError(path, errors.Newf("row %d has %d fields, want %d", i+1, len(record), len(header)))
		}
		t.IDs = append(t.IDs, record[0])
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.NewDataError(path, errors.Wrapf(err, "row %d, column %q", i+1, t.Columns[j]))
			}
			values = append(values, v)
		}
	}

	t.data = mat.NewDense(nRows, nCols, values)
	return t, nil
}

// NumRows returns the number of samples in the table.
func (t *Table) NumRows() int {
	r, _ := t.data.Dims()
	return r
}

// NumColumns returns the number of numeric columns, label included.
func (t *Table) NumColumns() int {
	_, c := t.data.Dims()
	return c
}

// columnIndex resolves a column name to its index in the numeric block.
func (t *Table) columnIndex(name string) (int, error) {
	for j, col := range t.Columns {
		if col == name {
			return j, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrMissingColumn, "column %q", name)
}

// Features returns the feature matrix: every numeric column except the
// named label column. The identifier column is excluded by construction.
func (t *Table) Features(label string) (*mat.Dense, error) {
	labelIdx, err := t.columnIndex(label)
	if err != nil {
		return nil, err
	}

	r, c := t.data.Dims()
	X := mat.NewDense(r, c-1, nil)
	for i := 0; i < r; i++ {
		k := 0
		for j := 0; j < c; j++ {
			if j == labelIdx {
				continue
			}
			X.Set(i, k, t.data.At(i, j))
			k++
		}
	}
	return X, nil
}

// FeatureNames returns the column names backing the matrix produced by
// Features, in the same order.
func (t *Table) FeatureNames(label string) ([]string, error) {
	if _, err := t.columnIndex(label); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(t.Columns)-1)
	for _, col := range t.Columns {
		if col == label {
			continue
		}
		names = append(names, col)
	}
	return names, nil
}

// Labels returns the named column as a label vector. Every value must be
// 0 or 1.
func (t *Table) Labels(label string) (*mat.VecDense, error) {
	labelIdx, err := t.columnIndex(label)
	if err != nil {
		return nil, err
	}

	r, _ := t.data.Dims()
	y := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v := t.data.At(i, labelIdx)
		if v != 0 && v != 1 {
			return nil, errors.NewValueError("Table.Labels", "label column must be binary, found "+strconv.FormatFloat(v, 'g', -1, 64))
		}
		y.SetVec(i, v)
	}
	return y, nil
}
