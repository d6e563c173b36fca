// Package xgboost implements gradient-boosted decision trees for binary
// classification in the style of the XGBoost library: exact greedy splits
// scored on gradient/hessian statistics, L2-regularized leaf values, and
// shrinkage applied per tree.
package xgboost

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// Node is a single node in a regression tree. Leaves have both child
// indices set to -1.
type Node struct {
	ID           int     `json:"id"`
	LeftChild    int     `json:"left_child"`
	RightChild   int     `json:"right_child"`
	SplitFeature int     `json:"split_feature"`
	Threshold    float64 `json:"threshold"`
	LeafValue    float64 `json:"leaf_value"`
	Gain         float64 `json:"gain"`
	NumSamples   int     `json:"num_samples"`
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// Tree is one member of the boosted ensemble. Nodes are stored in a flat
// slice indexed by child pointers, root at index 0.
type Tree struct {
	Index     int     `json:"index"`
	Shrinkage float64 `json:"shrinkage"`
	Nodes     []Node  `json:"nodes"`
}

// Predict routes a feature vector to a leaf and returns the shrunk leaf
// value.
func (t *Tree) Predict(features []float64) float64 {
	idx := 0
	for idx >= 0 && idx < len(t.Nodes) {
		node := &t.Nodes[idx]
		if node.IsLeaf() {
			return node.LeafValue * t.Shrinkage
		}
		if features[node.SplitFeature] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0
}

// NumLeaves counts the terminal nodes.
func (t *Tree) NumLeaves() int {
	count := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			count++
		}
	}
	return count
}

// Model is a fitted boosted ensemble. It is produced by a Trainer and
// consumed through its prediction methods; the tree internals are opaque
// to callers.
type Model struct {
	Objective    string   `json:"objective"`
	NumRounds    int      `json:"num_rounds"`
	LearningRate float64  `json:"learning_rate"`
	MaxDepth     int      `json:"max_depth"`
	NumFeatures  int      `json:"num_features"`
	FeatureNames []string `json:"feature_names,omitempty"`
	InitScore    float64  `json:"init_score"`
	Trees        []Tree   `json:"trees"`
}

// PredictRawSingle returns the untransformed ensemble score for one
// sample: the init score plus the shrunk outputs of every tree.
func (m *Model) PredictRawSingle(features []float64) float64 {
	score := m.InitScore
	for i := range m.Trees {
		score += m.Trees[i].Predict(features)
	}
	return score
}

// PredictRaw returns untransformed scores for a batch of samples.
func (m *Model) PredictRaw(X mat.Matrix) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if cols != m.NumFeatures {
		return nil, errors.NewDimensionError("Model.PredictRaw", m.NumFeatures, cols, 1)
	}

	out := mat.NewVecDense(rows, nil)
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(features, i, X)
		out.SetVec(i, m.PredictRawSingle(features))
	}
	return out, nil
}

// PredictProba returns the positive-class probability for each sample.
// Only meaningful for the logistic objective; for regression objectives
// the raw score is passed through unchanged.
func (m *Model) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	raw, err := m.PredictRaw(X)
	if err != nil {
		return nil, err
	}

	obj, err := NewObjective(m.Objective)
	if err != nil {
		return nil, err
	}
	for i := 0; i < raw.Len(); i++ {
		raw.SetVec(i, obj.Transform(raw.AtVec(i)))
	}
	return raw, nil
}

// FeatureImportance returns per-feature importance scores, normalized to
// sum to one. kind is "split" (number of times a feature is used) or
// "gain" (total split gain attributed to the feature).
func (m *Model) FeatureImportance(kind string) ([]float64, error) {
	if kind != "split" && kind != "gain" {
		return nil, errors.Newf("xgboost: unknown importance type %q", kind)
	}

	importance := make([]float64, m.NumFeatures)
	for i := range m.Trees {
		for j := range m.Trees[i].Nodes {
			node := &m.Trees[i].Nodes[j]
			if node.IsLeaf() {
				continue
			}
			switch kind {
			case "split":
				importance[node.SplitFeature]++
			case "gain":
				importance[node.SplitFeature] += node.Gain
			}
		}
	}

	total := 0.0
	for _, v := range importance {
		total += v
	}
	if total > 0 {
		for i := range importance {
			importance[i] /= total
		}
	}
	return importance, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
