package preprocessing

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Split は (X, y) の行単位の訓練/テスト分割。行集合は互いに素で、
// 合わせると元の全行になる。
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.VecDense
	YTest  *mat.VecDense

	// TrainIndices と TestIndices は元の行インデックス
	TrainIndices []int
	TestIndices  []int
}

// TrainTestSplit は行をランダムに訓練/テストへ分割する。テスト行数は
// round(testSize*N)。層化は行わない。
//
// seed が負の場合は時刻ベースのシードを使い、実行ごとに異なる分割を
// 返す。非負の場合は同じ分割を再現する。
func TrainTestSplit(X *mat.Dense, y *mat.VecDense, testSize float64, seed int64) (*Split, error) {
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.NewValueError("TrainTestSplit", "empty data")
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, errors.Newf("TrainTestSplit: test_size must be in (0, 1), got %g", testSize)
	}

	nTest := int(math.Round(testSize * float64(n)))
	if nTest == 0 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}

	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	s := &Split{
		TestIndices:  indices[:nTest],
		TrainIndices: indices[nTest:],
	}
	s.XTrain, s.YTrain = takeRows(X, y, s.TrainIndices)
	s.XTest, s.YTest = takeRows(X, y, s.TestIndices)
	return s, nil
}

// takeRows は選択した行を新しい行列へコピーする
func takeRows(X *mat.Dense, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, c := X.Dims()
	outX := mat.NewDense(len(indices), c, nil)
	outY := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			outX.Set(i, j, X.At(idx, j))
		}
		outY.SetVec(i, y.AtVec(idx))
	}
	return outX, outY
}
