// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCfg(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeCfg(t, `
ref: ref.fasta
samples:
  - a.fasta
  - b.fasta
ploidy: 2
min-gf: 0.85
no-dist: true
out-dir: results
`))
	require.NoError(t, err)
	require.NotNil(t, f.Ref)
	assert.Equal(t, "ref.fasta", *f.Ref)
	assert.Equal(t, []string{"a.fasta", "b.fasta"}, f.Samples)
	require.NotNil(t, f.Ploidy)
	assert.Equal(t, 2, *f.Ploidy)
	require.NotNil(t, f.MinGF)
	assert.InDelta(t, 0.85, *f.MinGF, 1e-12)
	require.NotNil(t, f.NoDist)
	assert.True(t, *f.NoDist)
	assert.Nil(t, f.MinCF, "absent keys stay nil")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeCfg(t, "min-gff: 0.9\n"))
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	f, err := Load(writeCfg(t, ""))
	require.NoError(t, err)
	assert.Nil(t, f.Ref)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
