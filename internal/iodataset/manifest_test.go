package iodataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MinhHuy1507/agriseed/internal/iodataset"
	"github.com/MinhHuy1507/agriseed/internal/iofs"
	"github.com/MinhHuy1507/agriseed/pkg/config"
	"github.com/MinhHuy1507/agriseed/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest writes a datasets.yaml in the default location under
// home.
func writeManifest(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(config.ConfigDir(home), 0755))
	require.NoError(t, os.WriteFile(
		config.DatasetsFilePath(home), []byte(content), 0644))
}

// writeManifestFromEmbedded installs the bundled default manifest.
func writeManifestFromEmbedded(t *testing.T, home string) {
	t.Helper()
	writeManifest(t, home, iofs.DatasetsYAML)
}

func manifestConfig(home string) *config.Config {
	cfg := config.New()
	cfg.HomeDir = home
	return cfg
}

func TestManifest_Load(t *testing.T) {
	home := t.TempDir()
	writeManifest(t, home, `
datasets:
  - name: climate
    path: climate.csv
    format: csv
    columns:
      province: province_code
      year: year
      metric: metric
      value: value
  - name: agriculture
    path: /srv/data/agriculture.xlsx
    format: xlsx
    columns:
      province: province_code
      year: year
    metrics:
      - rice_area
      - rice_yield
`)

	m := iodataset.NewManifest(manifestConfig(home))
	mc, err := m.Load()
	require.NoError(t, err)
	require.Len(t, mc.Datasets, 2)

	// A relative path resolves against the data directory; an absolute
	// one stays put.
	assert.Equal(t,
		filepath.Join(config.DataDir(home), "climate.csv"),
		mc.Datasets[0].Path)
	assert.Equal(t, "/srv/data/agriculture.xlsx", mc.Datasets[1].Path)

	assert.Equal(t, []string{"rice_area", "rice_yield"},
		mc.Datasets[1].Metrics)
}

func TestManifest_Missing(t *testing.T) {
	m := iodataset.NewManifest(manifestConfig(t.TempDir()))
	_, err := m.Load()
	requireCode(t, err, errcode.DatasetManifestError)
}

func TestManifest_InvalidDeclaration(t *testing.T) {
	home := t.TempDir()
	writeManifest(t, home, `
datasets:
  - name: climate
    path: climate.csv
    format: parquet
`)

	m := iodataset.NewManifest(manifestConfig(home))
	_, err := m.Load()
	requireCode(t, err, errcode.DatasetManifestError)
}

func TestManifest_EmbeddedDefaultParses(t *testing.T) {
	home := t.TempDir()

	// The generated default manifest has to pass its own validation.
	writeManifestFromEmbedded(t, home)

	m := iodataset.NewManifest(manifestConfig(home))
	mc, err := m.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, mc.Datasets)
}
