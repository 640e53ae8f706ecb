package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLASSBOARD_SESSION_SIGNING_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "classboard", cfg.App.Name)
	assert.Equal(t, "127.0.0.1", cfg.APIServer.Host)
	assert.Equal(t, 8088, cfg.APIServer.Port)
	assert.Equal(t, "inmemory", cfg.Cache.Backend)
	assert.Equal(t, "classboard.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, "Mat", cfg.Seed.Teacher)
	assert.Equal(t, "classboard_session", cfg.Session.CookieName)
	assert.Equal(t, "test-key", cfg.Session.SigningKey)
}

func TestLoad_MissingSigningKey(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
apiserver:
  port: 9090
session:
  signing_key: from-file
seed:
  teacher: Ada
  classrooms:
    - name: 5VR
      capacity: 35
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIServer.Port)
	assert.Equal(t, "from-file", cfg.Session.SigningKey)
	assert.Equal(t, "Ada", cfg.Seed.Teacher)
	require.Len(t, cfg.Seed.Classrooms, 1)
	assert.Equal(t, "5VR", cfg.Seed.Classrooms[0].Name)
	assert.Equal(t, 35, cfg.Seed.Classrooms[0].Capacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
