// Package iodataset implements the Dataset Loader: it reads the
// datasets.yaml manifest and produces raw row sequences from CSV, XLSX
// and SQLite dataset files. This is an impure I/O package.
package iodataset

import (
	"os"
	"path/filepath"

	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/MinhHuy1507/agriseed/pkg/dataset"
	"gopkg.in/yaml.v3"
)

type manifest struct {
	cfg *config.Config
}

// NewManifest creates a datasets.yaml loader.
func NewManifest(cfg *config.Config) dataset.Manifest {
	res := manifest{cfg: cfg}
	return &res
}

// Load reads and validates the datasets.yaml manifest. Relative dataset
// paths are resolved against the data directory.
func (m *manifest) Load() (*dataset.ManifestConfig, error) {
	path := config.DatasetsFilePath(m.cfg.HomeDir)
	mc, err := loadManifest(path)
	if err != nil {
		return nil, ManifestError(path, err)
	}

	dataDir := config.DataDir(m.cfg.HomeDir)
	for i, ds := range mc.Datasets {
		if !filepath.IsAbs(ds.Path) {
			mc.Datasets[i].Path = filepath.Join(dataDir, ds.Path)
		}
	}

	return mc, nil
}

func loadManifest(path string) (*dataset.ManifestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mc dataset.ManifestConfig
	if err := yaml.Unmarshal(data, &mc); err != nil {
		return nil, err
	}

	if err := mc.Validate(); err != nil {
		return nil, err
	}

	return &mc, nil
}
