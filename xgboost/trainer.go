package xgboost

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/omarzanji/parkinsons-detection/metrics"
	"github.com/omarzanji/parkinsons-detection/pkg/errors"
	"github.com/omarzanji/parkinsons-detection/pkg/log"
)

// TrainingParams holds the boosting hyperparameters. Zero values are
// replaced with defaults by NewTrainer.
type TrainingParams struct {
	// NumRounds is the number of boosting iterations (trees).
	NumRounds int `json:"num_rounds"`

	// LearningRate shrinks the contribution of each tree.
	LearningRate float64 `json:"learning_rate"`

	// MaxDepth limits tree depth.
	MaxDepth int `json:"max_depth"`

	// MinChildSamples is the minimum number of rows per leaf.
	MinChildSamples int `json:"min_child_samples"`

	// Lambda is the L2 regularization term on leaf values.
	Lambda float64 `json:"lambda"`

	// MinSplitGain is the minimum gain required to split a node.
	MinSplitGain float64 `json:"min_split_gain"`

	// Objective selects the loss, e.g. "binary:logistic".
	Objective string `json:"objective"`

	// Verbosity > 0 enables progress logging.
	Verbosity int `json:"verbosity"`
}

// evalSet is a named dataset whose loss is tracked across iterations.
type evalSet struct {
	name string
	X    *mat.Dense
	y    *mat.VecDense
	raw  []float64
}

// splitInfo describes the best split found for a node.
type splitInfo struct {
	feature    int
	threshold  float64
	gain       float64
	leftCount  int
	rightCount int
}

// Trainer fits a boosted ensemble round by round, tracking the loss of
// every registered evaluation set per iteration.
type Trainer struct {
	params TrainingParams
	obj    Objective

	X *mat.Dense
	y *mat.VecDense

	// raw, gradients and hessians are indexed by training row.
	raw       []float64
	gradients []float64
	hessians  []float64

	trees     []Tree
	initScore float64

	evalSets  []evalSet
	history   map[string][]float64
	callbacks *CallbackList

	featureNames []string
}

// NewTrainer creates a trainer, filling in XGBoost-style defaults.
func NewTrainer(params TrainingParams) *Trainer {
	if params.NumRounds == 0 {
		params.NumRounds = 100
	}
	if params.LearningRate == 0 {
		params.LearningRate = 0.3
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 6
	}
	if params.MinChildSamples == 0 {
		params.MinChildSamples = 1
	}
	if params.Lambda == 0 {
		params.Lambda = 1.0
	}
	if params.Objective == "" {
		params.Objective = BinaryLogistic
	}

	return &Trainer{
		params:  params,
		history: make(map[string][]float64),
	}
}

// WithEvalSet registers a named dataset to evaluate after each boosting
// round. The resulting per-iteration losses are available from History
// under the key "<name>-logloss".
func (t *Trainer) WithEvalSet(name string, X *mat.Dense, y *mat.VecDense) *Trainer {
	t.evalSets = append(t.evalSets, evalSet{name: name, X: X, y: y})
	return t
}

// WithCallbacks sets the callbacks invoked around each iteration.
func (t *Trainer) WithCallbacks(callbacks ...Callback) *Trainer {
	t.callbacks = NewCallbackList(callbacks...)
	return t
}

// WithFeatureNames attaches column names to the resulting model.
func (t *Trainer) WithFeatureNames(names []string) *Trainer {
	t.featureNames = names
	return t
}

// Fit trains the ensemble on X and y.
func (t *Trainer) Fit(X *mat.Dense, y *mat.VecDense) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError("Trainer.Fit", "empty data")
	}
	if y.Len() != rows {
		return errors.NewDimensionError("Trainer.Fit", rows, y.Len(), 0)
	}

	obj, err := NewObjective(t.params.Objective)
	if err != nil {
		return err
	}
	t.obj = obj
	t.X = X
	t.y = y

	targets := make([]float64, rows)
	for i := 0; i < rows; i++ {
		targets[i] = y.AtVec(i)
	}
	t.initScore = t.obj.InitScore(targets)

	t.raw = make([]float64, rows)
	for i := range t.raw {
		t.raw[i] = t.initScore
	}
	t.gradients = make([]float64, rows)
	t.hessians = make([]float64, rows)
	t.trees = t.trees[:0]

	for i := range t.evalSets {
		es := &t.evalSets[i]
		n, c := es.X.Dims()
		if c != cols {
			return errors.NewDimensionError("Trainer.Fit eval set "+es.name, cols, c, 1)
		}
		es.raw = make([]float64, n)
		for j := range es.raw {
			es.raw[j] = t.initScore
		}
	}

	logger := log.GetLoggerWithName("xgboost.trainer")
	if t.params.Verbosity > 0 {
		logger.Info("training started",
			log.SamplesKey, rows,
			log.FeaturesKey, cols,
			"objective", t.obj.Name(),
			"rounds", t.params.NumRounds)
	}

	for iter := 0; iter < t.params.NumRounds; iter++ {
		if t.callbacks != nil {
			if err := t.callbacks.BeforeIteration(iter); err != nil {
				return errors.Wrapf(err, "callback at iteration %d", iter)
			}
			if t.callbacks.ShouldStop() {
				break
			}
		}

		t.computeDerivatives()

		tree := t.buildTree(iter)
		t.trees = append(t.trees, tree)
		t.updateScores(&tree)

		evalResults, err := t.evaluate()
		if err != nil {
			return errors.Wrapf(err, "evaluation at iteration %d", iter)
		}
		for _, key := range sortedKeys(evalResults) {
			t.history[key] = append(t.history[key], evalResults[key])
		}

		if t.callbacks != nil {
			if err := t.callbacks.AfterIteration(iter, evalResults); err != nil {
				return errors.Wrapf(err, "callback at iteration %d", iter)
			}
			if t.callbacks.ShouldStop() {
				if t.params.Verbosity > 0 {
					logger.Info("training stopped by callback", log.IterationKey, iter)
				}
				break
			}
		}

		if t.params.Verbosity > 0 && iter%10 == 0 {
			logger.Debug("training progress",
				log.IterationKey, iter,
				log.LossKey, evalResults["train-logloss"])
		}
	}

	return nil
}

// History returns the recorded per-iteration loss of every evaluation
// set, keyed "<name>-logloss", ordered by iteration.
func (t *Trainer) History() map[string][]float64 {
	return t.history
}

// Model assembles the fitted ensemble.
func (t *Trainer) Model() *Model {
	_, cols := t.X.Dims()
	return &Model{
		Objective:    t.obj.Name(),
		NumRounds:    len(t.trees),
		LearningRate: t.params.LearningRate,
		MaxDepth:     t.params.MaxDepth,
		NumFeatures:  cols,
		FeatureNames: t.featureNames,
		InitScore:    t.initScore,
		Trees:        t.trees,
	}
}

// computeDerivatives refreshes the gradient and hessian of every
// training row at the current raw scores.
func (t *Trainer) computeDerivatives() {
	for i := range t.gradients {
		target := t.y.AtVec(i)
		t.gradients[i] = t.obj.Gradient(t.raw[i], target)
		t.hessians[i] = t.obj.Hessian(t.raw[i], target)
	}
}

// updateScores adds the new tree's contribution to the running raw
// scores of the training set and every evaluation set.
func (t *Trainer) updateScores(tree *Tree) {
	_, cols := t.X.Dims()
	features := make([]float64, cols)

	for i := range t.raw {
		mat.Row(features, i, t.X)
		t.raw[i] += tree.Predict(features)
	}
	for s := range t.evalSets {
		es := &t.evalSets[s]
		for i := range es.raw {
			mat.Row(features, i, es.X)
			es.raw[i] += tree.Predict(features)
		}
	}
}

// evaluate computes the loss of the training set and every evaluation
// set at the current scores.
func (t *Trainer) evaluate() (map[string]float64, error) {
	results := make(map[string]float64, len(t.evalSets)+1)

	trainLoss, err := t.setLoss(t.y, t.raw)
	if err != nil {
		return nil, err
	}
	results["train-logloss"] = trainLoss

	for i := range t.evalSets {
		es := &t.evalSets[i]
		loss, err := t.setLoss(es.y, es.raw)
		if err != nil {
			return nil, err
		}
		results[es.name+"-logloss"] = loss
	}
	return results, nil
}

// setLoss scores one dataset. The logistic objective reports log-loss
// through the metrics package; other objectives average the per-sample
// loss directly.
func (t *Trainer) setLoss(y *mat.VecDense, raw []float64) (float64, error) {
	if t.obj.Name() == BinaryLogistic {
		proba := mat.NewVecDense(len(raw), nil)
		for i, r := range raw {
			proba.SetVec(i, t.obj.Transform(r))
		}
		return metrics.LogLoss(y, proba)
	}

	sum := 0.0
	for i, r := range raw {
		sum += t.obj.Loss(r, y.AtVec(i))
	}
	return sum / float64(len(raw)), nil
}

// buildTree grows one depth-wise tree on the current derivatives.
func (t *Trainer) buildTree(iter int) Tree {
	tree := Tree{
		Index:     iter,
		Shrinkage: t.params.LearningRate,
	}

	rows, _ := t.X.Dims()
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}

	t.buildNode(&tree, indices, 0)
	return tree
}

// buildNode recursively grows nodes and returns the new node's index.
func (t *Trainer) buildNode(tree *Tree, indices []int, depth int) int {
	nodeIdx := len(tree.Nodes)

	if depth >= t.params.MaxDepth || len(indices) < 2*t.params.MinChildSamples {
		tree.Nodes = append(tree.Nodes, t.makeLeaf(nodeIdx, indices))
		return nodeIdx
	}

	best := t.findBestSplit(indices)
	if best.feature < 0 || best.gain <= t.params.MinSplitGain {
		tree.Nodes = append(tree.Nodes, t.makeLeaf(nodeIdx, indices))
		return nodeIdx
	}

	tree.Nodes = append(tree.Nodes, Node{
		ID:           nodeIdx,
		LeftChild:    -1,
		RightChild:   -1,
		SplitFeature: best.feature,
		Threshold:    best.threshold,
		Gain:         best.gain,
		NumSamples:   len(indices),
	})

	left := make([]int, 0, best.leftCount)
	right := make([]int, 0, best.rightCount)
	for _, idx := range indices {
		if t.X.At(idx, best.feature) <= best.threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	tree.Nodes[nodeIdx].LeftChild = t.buildNode(tree, left, depth+1)
	tree.Nodes[nodeIdx].RightChild = t.buildNode(tree, right, depth+1)
	return nodeIdx
}

// makeLeaf creates a leaf node with the L2-regularized optimal value.
func (t *Trainer) makeLeaf(id int, indices []int) Node {
	var sumGrad, sumHess float64
	for _, idx := range indices {
		sumGrad += t.gradients[idx]
		sumHess += t.hessians[idx]
	}

	return Node{
		ID:         id,
		LeftChild:  -1,
		RightChild: -1,
		LeafValue:  -sumGrad / (sumHess + t.params.Lambda),
		NumSamples: len(indices),
	}
}

// findBestSplit scans every feature for the highest-gain threshold.
func (t *Trainer) findBestSplit(indices []int) splitInfo {
	_, cols := t.X.Dims()
	best := splitInfo{feature: -1, gain: math.Inf(-1)}

	for j := 0; j < cols; j++ {
		if split := t.findBestSplitForFeature(indices, j); split.gain > best.gain {
			best = split
		}
	}
	return best
}

// findBestSplitForFeature sorts the node's rows by one feature and
// sweeps all midpoints between adjacent distinct values.
func (t *Trainer) findBestSplitForFeature(indices []int, feature int) splitInfo {
	order := make([]int, len(indices))
	copy(order, indices)
	sort.Slice(order, func(a, b int) bool {
		return t.X.At(order[a], feature) < t.X.At(order[b], feature)
	})

	var totalGrad, totalHess float64
	for _, idx := range order {
		totalGrad += t.gradients[idx]
		totalHess += t.hessians[idx]
	}

	best := splitInfo{feature: feature, gain: math.Inf(-1)}

	var leftGrad, leftHess float64
	for i := 0; i < len(order)-1; i++ {
		idx := order[i]
		leftGrad += t.gradients[idx]
		leftHess += t.hessians[idx]

		cur := t.X.At(idx, feature)
		next := t.X.At(order[i+1], feature)
		if cur == next {
			continue
		}

		leftCount := i + 1
		rightCount := len(order) - leftCount
		if leftCount < t.params.MinChildSamples || rightCount < t.params.MinChildSamples {
			continue
		}

		gain := t.splitGain(leftGrad, leftHess, totalGrad-leftGrad, totalHess-leftHess, totalGrad, totalHess)
		if gain > best.gain {
			best.gain = gain
			best.threshold = (cur + next) / 2
			best.leftCount = leftCount
			best.rightCount = rightCount
		}
	}
	return best
}

// splitGain is the structure-score improvement of a candidate split.
func (t *Trainer) splitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	lambda := t.params.Lambda
	left := leftGrad * leftGrad / (leftHess + lambda)
	right := rightGrad * rightGrad / (rightHess + lambda)
	total := totalGrad * totalGrad / (totalHess + lambda)
	return 0.5 * (left + right - total)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
