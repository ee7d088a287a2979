package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", writeConfig(t, `
server:
  port: 8080
database:
  driver: sqlite
  url: file::memory:
jwt:
  secret: from-file
`))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.FrontendURLs)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "uploads/portfolio", cfg.Storage.BasePath)
	assert.Equal(t, "/uploads/portfolio", cfg.Storage.PublicPath)
	assert.Equal(t, "portfolio", cfg.Storage.Folder)
	assert.EqualValues(t, 25*1024*1024, cfg.Upload.MaxSize)
	assert.Equal(t, 10, cfg.Upload.MaxFiles)
	assert.Contains(t, cfg.Upload.AllowedExtensions, "webm")
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_Validation(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "x")
	t.Setenv("STORAGE_TYPE", "ftp")
	_, err = Load()
	assert.ErrorContains(t, err, "unsupported storage type")

	t.Setenv("STORAGE_TYPE", "gcs")
	t.Setenv("SERVER_PORT", "eighty")
	_, err = Load()
	assert.ErrorContains(t, err, "SERVER_PORT")
}
