// Package preprocessing は特徴量のスケーリングと訓練/テスト分割を提供します。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/core/model"
	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// MinMaxScaler は各特徴量列の観測範囲を指定した範囲に写像するスケーラー。
// 列の最小値が FeatureRange[0] に、最大値が FeatureRange[1] に対応する。
type MinMaxScaler struct {
	model.BaseEstimator

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64

	// DataMin は学習データの各列の最小値
	DataMin []float64

	// DataMax は学習データの各列の最大値
	DataMax []float64

	// NFeatures は特徴量の数
	NFeatures int

	// scale と offset は変換 x*scale + offset の係数（Fitで計算）
	scale  []float64
	offset []float64
}

// NewMinMaxScaler は指定した範囲のMinMaxScalerを作成する。
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{-1, 1})
//	XScaled, err := scaler.FitTransform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange}
}

// Fit は各列の最小値・最大値から変換係数を計算する。
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("MinMaxScaler.Fit", "empty data")
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.scale = make([]float64, c)
	m.offset = make([]float64, c)

	span := m.FeatureRange[1] - m.FeatureRange[0]
	for j := 0; j < c; j++ {
		lo, hi := X.At(0, j), X.At(0, j)
		for i := 1; i < r; i++ {
			v := X.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		m.DataMin[j] = lo
		m.DataMax[j] = hi

		// 定数列はスケール1で平行移動のみ行う
		dataRange := hi - lo
		if math.Abs(dataRange) < 1e-8 {
			dataRange = 1.0
		}
		m.scale[j] = span / dataRange
		m.offset[j] = m.FeatureRange[0] - lo*m.scale[j]
	}

	m.SetFitted()
	return nil
}

// Transform は学習済みの係数でデータをスケーリングする。
func (m *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*m.scale[j]+m.offset[j])
		}
	}
	return out, nil
}

// FitTransform は学習と変換を続けて行う。
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す。
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-m.offset[j])/m.scale[j])
		}
	}
	return out, nil
}

// String はスケーラーの文字列表現を返す。
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%g, %g])", m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%g, %g], n_features=%d)", m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}
