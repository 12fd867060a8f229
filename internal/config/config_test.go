package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvInputPath, EnvUsername, EnvPassword, EnvAPIURL} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	c, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultInputPath, c.InputPath)
	assert.Equal(t, DefaultSnapshotPath, c.SnapshotPath)
	assert.Equal(t, DefaultAPIURL, c.APIURL)
	assert.False(t, c.HasCredentials())
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# credentials\nUSERNAME=ops@example.com\nPASSWORD=\"s3cr#t\"\nPATH_TO_CSV=./retired.csv\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", c.Username)
	assert.Equal(t, "s3cr#t", c.Password)
	assert.Equal(t, "./retired.csv", c.InputPath)
	assert.True(t, c.HasCredentials())
}

func TestLoadLogmeinSection(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[logmein]\nusername = admin\npassword = pw\napi_url = http://127.0.0.1:9999/v1\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "admin", c.Username)
	assert.Equal(t, "pw", c.Password)
	assert.Equal(t, "http://127.0.0.1:9999/v1", c.APIURL)
	assert.Equal(t, DefaultInputPath, c.InputPath)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("USERNAME=file-user\nPASSWORD=file-pass\n"), 0o600))
	t.Setenv(EnvUsername, "env-user")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-user", c.Username)
	assert.Equal(t, "file-pass", c.Password)
}

func TestLoadEmptyPathUsesEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInputPath, "/tmp/names.txt")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/names.txt", c.InputPath)
}

func TestLoadDotEnvExportPrefix(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("export USERNAME=ops\nexport PASSWORD=pw\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ops", c.Username)
	assert.Equal(t, "pw", c.Password)
}

func TestLoadDotEnvIgnoresBareLines(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEBUG\nUSERNAME=ops\nLMI_API_URL=http://127.0.0.1:8080/v1\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ops", c.Username)
	assert.Equal(t, "http://127.0.0.1:8080/v1", c.APIURL)
}
