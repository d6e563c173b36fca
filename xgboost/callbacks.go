package xgboost

import (
	"fmt"
	"math"
	"sort"
)

// CallbackEnv is the state passed to callbacks around each boosting
// iteration.
type CallbackEnv struct {
	Iteration    int
	EvalResults  map[string]float64
	StopTraining bool
}

// Callback is invoked before and after each boosting iteration.
// EvalResults is empty in the before-iteration call.
type Callback func(env *CallbackEnv) error

// PrintEvaluation prints evaluation results every period iterations.
func PrintEvaluation(period int) Callback {
	if period <= 0 {
		period = 1
	}
	return func(env *CallbackEnv) error {
		if len(env.EvalResults) == 0 || env.Iteration%period != 0 {
			return nil
		}
		fmt.Printf("[%d]", env.Iteration)
		keys := make([]string, 0, len(env.EvalResults))
		for k := range env.EvalResults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("\t%s:%.6f", k, env.EvalResults[k])
		}
		fmt.Println()
		return nil
	}
}

// RecordEvaluation appends every evaluation result to the caller's
// history map, keyed by metric name.
func RecordEvaluation(history *map[string][]float64) Callback {
	return func(env *CallbackEnv) error {
		if len(env.EvalResults) == 0 {
			return nil
		}
		if *history == nil {
			*history = make(map[string][]float64)
		}
		for name, value := range env.EvalResults {
			(*history)[name] = append((*history)[name], value)
		}
		return nil
	}
}

// EarlyStopping stops training when the named metric has not improved
// for rounds consecutive iterations. Loss metrics are minimized.
func EarlyStopping(rounds int, metric string) Callback {
	best := math.Inf(1)
	bestIteration := 0
	stale := 0

	return func(env *CallbackEnv) error {
		value, ok := env.EvalResults[metric]
		if !ok {
			return nil
		}
		if value < best {
			best = value
			bestIteration = env.Iteration
			stale = 0
			return nil
		}
		stale++
		if stale >= rounds {
			fmt.Printf("early stopping at iteration %d, best iteration %d with %s = %.6f\n",
				env.Iteration, bestIteration, metric, best)
			env.StopTraining = true
		}
		return nil
	}
}

// CallbackList runs a set of callbacks against a shared environment.
type CallbackList struct {
	callbacks []Callback
	env       *CallbackEnv
}

// NewCallbackList creates a callback list.
func NewCallbackList(callbacks ...Callback) *CallbackList {
	return &CallbackList{
		callbacks: callbacks,
		env:       &CallbackEnv{},
	}
}

// BeforeIteration runs callbacks with no evaluation results.
func (cl *CallbackList) BeforeIteration(iteration int) error {
	cl.env.Iteration = iteration
	cl.env.EvalResults = nil

	for _, cb := range cl.callbacks {
		if err := cb(cl.env); err != nil {
			return err
		}
		if cl.env.StopTraining {
			break
		}
	}
	return nil
}

// AfterIteration runs callbacks with the iteration's evaluation results.
func (cl *CallbackList) AfterIteration(iteration int, evalResults map[string]float64) error {
	cl.env.Iteration = iteration
	cl.env.EvalResults = evalResults

	for _, cb := range cl.callbacks {
		if err := cb(cl.env); err != nil {
			return err
		}
	}
	return nil
}

// ShouldStop reports whether a callback requested early termination.
func (cl *CallbackList) ShouldStop() bool {
	return cl.env.StopTraining
}
