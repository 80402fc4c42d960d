package params

// SweepAll is the fixed masking-probability sweep run when AllMask is set.
// -1 means "mask exactly one token per document".
var SweepAll = []float64{-1, 0.25, 0.5, 0.75, 1}

type TrainingConfig struct {
	// Data parameters
	TrainFile    string // blank-line-delimited corpus
	OutputDir    string // checkpoints, best scores, plots
	MaxSeqLength int    // truncate/pad every document to this many tokens
	VocabSize    int    // |V| including [UNK] and [MASK]
	DModel       int    // embedding width

	// Optimization parameters
	BatchSize                 int
	LearningRate              float64
	NumEpochs                 int
	WarmupProportion          float64 // fraction of steps under linear warmup
	GradientAccumulationSteps int
	AdamBeta1                 float64 // default 0.9
	AdamBeta2                 float64 // default 0.999
	AdamEps                   float64 // default 1e-8
	WeightDecay               float64 // AdamW-style; 0 disables

	// Run control
	DoTrain     bool
	DoLowerCase bool
	Seed        int64
	NumWorkers  int // parallel feature encoders per batch

	// Entity weighting
	Weighted     bool
	EntitiesFile string
	Weight       float64 // loss multiplier for entity-token predictions

	// Masking
	MaskProb float64 // in (0,1], or -1 for single-token masking
	AllMask  bool    // sweep SweepAll instead of MaskProb
}

// Reasonable defaults for small experiments; mirrored by the CLI flags.
var Defaults = TrainingConfig{
	TrainFile:    "../data/20news.txt",
	OutputDir:    "../output_dir",
	MaxSeqLength: 512,
	VocabSize:    28000,
	DModel:       128,

	BatchSize:                 32,
	LearningRate:              3e-5,
	NumEpochs:                 3,
	WarmupProportion:          0.1,
	GradientAccumulationSteps: 1,
	AdamBeta1:                 0.9,
	AdamBeta2:                 0.999,
	AdamEps:                   1e-8,
	WeightDecay:               0.01,

	DoTrain:     false,
	DoLowerCase: true,
	Seed:        42,
	NumWorkers:  4,

	Weighted: false,
	Weight:   2.0,

	MaskProb: 1.0,
	AllMask:  false,
}
