package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/dataset"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/model"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/params"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/trainer"
)

func main() {
	cfg := params.Defaults

	root := &cobra.Command{
		Use:   "md2vec",
		Short: "Train masked-document embeddings over a text corpus",
		Long: "md2vec trains document and word embeddings with a masked-language-modeling\n" +
			"objective, sweeping across masking strategies and tracking embedding drift.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	f := root.Flags()
	f.StringVar(&cfg.TrainFile, "train_file", cfg.TrainFile, "input train corpus, blank-line-delimited documents")
	f.StringVar(&cfg.OutputDir, "output_dir", cfg.OutputDir, "directory for checkpoints, best scores and plots")
	f.IntVar(&cfg.MaxSeqLength, "max_seq_length", cfg.MaxSeqLength, "maximum input sequence length after tokenization")
	f.IntVar(&cfg.VocabSize, "vocab_size", cfg.VocabSize, "vocabulary size including [UNK] and [MASK]")
	f.IntVar(&cfg.DModel, "d_model", cfg.DModel, "embedding width")
	f.IntVar(&cfg.BatchSize, "train_batch_size", cfg.BatchSize, "total batch size for training")
	f.Float64Var(&cfg.LearningRate, "learning_rate", cfg.LearningRate, "initial Adam learning rate")
	f.IntVar(&cfg.NumEpochs, "num_train_epochs", cfg.NumEpochs, "number of training epochs")
	f.Float64Var(&cfg.WarmupProportion, "warmup_proportion", cfg.WarmupProportion, "fraction of training under linear LR warmup")
	f.IntVar(&cfg.GradientAccumulationSteps, "gradient_accumulation_steps", cfg.GradientAccumulationSteps, "updates to accumulate before an optimizer step")
	f.BoolVar(&cfg.DoTrain, "do_train", cfg.DoTrain, "run training")
	f.BoolVar(&cfg.DoLowerCase, "do_lower_case", cfg.DoLowerCase, "lower case the input text")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for initialization")
	f.IntVar(&cfg.NumWorkers, "num_workers", cfg.NumWorkers, "parallel feature-encoding workers")
	f.BoolVar(&cfg.Weighted, "weighted", cfg.Weighted, "upweight entity tokens in the loss")
	f.StringVar(&cfg.EntitiesFile, "entities", cfg.EntitiesFile, "JSON file of entity records for loss weighting")
	f.Float64Var(&cfg.Weight, "weight", cfg.Weight, "loss weight for entity tokens")
	f.Float64Var(&cfg.MaskProb, "mask_prob", cfg.MaskProb, "masking probability, or -1 to mask one token per document")
	f.BoolVar(&cfg.AllMask, "all_mask", cfg.AllMask, "sweep masking configurations {-1, 0.25, 0.5, 0.75, 1}")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg params.TrainingConfig) error {
	docs, err := IO.LoadDocuments(cfg.TrainFile)
	if err != nil {
		return err
	}

	var entities []IO.Entity
	if cfg.Weighted && cfg.EntitiesFile != "" {
		entities, err = IO.LoadEntities(cfg.EntitiesFile)
		if err != nil {
			return err
		}
	}

	factory := func(vocabSize, numDocs int) (trainer.Model, trainer.Optimizer) {
		rng := rand.New(rand.NewSource(cfg.Seed))
		m := model.New(model.Config{
			VocabSize: vocabSize,
			NumDocs:   numDocs,
			DModel:    cfg.DModel,
		}, rng)
		opt := model.NewAdam(m, model.AdamConfig{
			LearningRate: cfg.LearningRate,
			Beta1:        cfg.AdamBeta1,
			Beta2:        cfg.AdamBeta2,
			Eps:          cfg.AdamEps,
			WeightDecay:  cfg.WeightDecay,
			Warmup:       cfg.WarmupProportion,
		})
		return m, opt
	}

	// Stand-in evaluation hook; swap in a clustering metric for real runs.
	hook := func(ds *dataset.Dataset, docEmb *mat.Dense) float64 {
		fmt.Println("dummy hook!")
		return 0
	}

	t := trainer.New(cfg, docs, entities, factory, hook, trainer.LinePlotter{})
	_, err = t.Run()
	return err
}
