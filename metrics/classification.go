// Package metrics は分類モデルの評価指標を提供します。
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Accuracy は正解率（一致した予測の割合、0〜1）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// LogLoss は二値分類の対数損失（binary cross-entropy）を計算する。
// proba は陽性クラスの予測確率。確率は [eps, 1-eps] にクリップされる。
func LogLoss(yTrue, proba *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("LogLoss", "empty vector")
	}

	if proba.Len() != n {
		return 0, errors.NewDimensionError("LogLoss", n, proba.Len(), 0)
	}

	const eps = 1e-15
	var sum float64
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		if y != 0 && y != 1 {
			return 0, errors.NewValueError("LogLoss", "labels must be binary")
		}
		p := math.Min(math.Max(proba.AtVec(i), eps), 1-eps)
		sum += -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}

	return sum / float64(n), nil
}

// ConfusionMatrix は実ラベル×予測ラベルの混同行列。
// Classes には観測された値が昇順に並び、Counts.At(i, j) は
// 実ラベル Classes[i]・予測ラベル Classes[j] の件数を表す。
type ConfusionMatrix struct {
	Classes []float64
	Counts  *mat.Dense
}

// NewConfusionMatrix は混同行列を計算する。行・列の数は実ラベルと
// 予測ラベルに観測された相異なる値の数に等しい。
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionMatrix, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("NewConfusionMatrix", "empty vector")
	}

	if yPred.Len() != n {
		return nil, errors.NewDimensionError("NewConfusionMatrix", n, yPred.Len(), 0)
	}

	// 観測された値を収集して昇順に並べる
	seen := make(map[float64]struct{})
	for i := 0; i < n; i++ {
		seen[yTrue.AtVec(i)] = struct{}{}
		seen[yPred.AtVec(i)] = struct{}{}
	}
	classes := make([]float64, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)

	index := make(map[float64]int, len(classes))
	for i, v := range classes {
		index[v] = i
	}

	k := len(classes)
	counts := mat.NewDense(k, k, nil)
	for i := 0; i < n; i++ {
		a := index[yTrue.AtVec(i)]
		p := index[yPred.AtVec(i)]
		counts.Set(a, p, counts.At(a, p)+1)
	}

	return &ConfusionMatrix{Classes: classes, Counts: counts}, nil
}

// NumClasses は行列の次数（観測されたクラス数）を返す
func (cm *ConfusionMatrix) NumClasses() int {
	return len(cm.Classes)
}

// Total は全セルの合計（評価した行数）を返す
func (cm *ConfusionMatrix) Total() int {
	r, c := cm.Counts.Dims()
	total := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			total += cm.Counts.At(i, j)
		}
	}
	return int(total)
}
