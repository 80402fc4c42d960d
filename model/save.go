package model

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// File names written by Save under the output directory.
const (
	ModelFile  = "md2vec_model.gob"
	ConfigFile = "md2vec_config.json"
)

type modelData struct {
	Cfg      Config
	DocData  []float64
	WordData []float64
}

// Save persists the parameter blob (gob) and the resolved model config
// (JSON) into dir.
func (m *MD2vec) Save(dir string) error {
	f, err := os.Create(filepath.Join(dir, ModelFile))
	if err != nil {
		return fmt.Errorf("model: create checkpoint: %w", err)
	}
	defer f.Close()

	data := modelData{
		Cfg:      m.Cfg,
		DocData:  append([]float64(nil), m.DocEmb.RawMatrix().Data...),
		WordData: append([]float64(nil), m.WordEmb.RawMatrix().Data...),
	}
	if err := gob.NewEncoder(f).Encode(&data); err != nil {
		return fmt.Errorf("model: encode checkpoint: %w", err)
	}

	cfgJSON, err := json.MarshalIndent(m.Cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("model: encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), cfgJSON, 0o644); err != nil {
		return fmt.Errorf("model: write config: %w", err)
	}
	return nil
}

// Load restores a model saved by Save.
func Load(dir string) (*MD2vec, error) {
	f, err := os.Open(filepath.Join(dir, ModelFile))
	if err != nil {
		return nil, fmt.Errorf("model: open checkpoint: %w", err)
	}
	defer f.Close()

	var data modelData
	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("model: decode checkpoint: %w", err)
	}
	cfg := data.Cfg
	m := &MD2vec{
		Cfg:     cfg,
		DocEmb:  mat.NewDense(cfg.NumDocs, cfg.DModel, data.DocData),
		WordEmb: mat.NewDense(cfg.VocabSize, cfg.DModel, data.WordData),
	}
	m.dDoc = mat.NewDense(cfg.NumDocs, cfg.DModel, nil)
	m.dWord = mat.NewDense(cfg.VocabSize, cfg.DModel, nil)
	return m, nil
}
