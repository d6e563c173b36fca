package log

// Standard attribute keys used across pipeline logging. Keeping the keys
// in one place makes run logs greppable and filterable.
const (
	// ModelNameKey identifies the estimator type, e.g. "XGBClassifier".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed:
	// "load", "fit", "predict", "transform", "report".
	OperationKey = "ml.operation"

	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// IterationKey is the boosting iteration index.
	IterationKey = "train.iteration"

	// LossKey is the current training loss value.
	LossKey = "train.loss"

	// AccuracyKey is a classification accuracy percentage.
	AccuracyKey = "eval.accuracy"

	// DurationSecondsKey records elapsed wall-clock time in seconds.
	DurationSecondsKey = "perf.duration_seconds"

	// RunKey is the pipeline run index.
	RunKey = "pipeline.run"
)
