package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
manager:
  address: dsm.example.com
  port: 443
  tenant: acme
  username: api-reader
  password: secret
  verify_tls: false
  call_timeout: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dsm.example.com", cfg.Manager.Address)
	assert.Equal(t, 443, cfg.Manager.Port)
	assert.Equal(t, "acme", cfg.Manager.Tenant)
	assert.Equal(t, "api-reader", cfg.Manager.Username)
	assert.False(t, cfg.Manager.VerifyTLS)
	assert.Equal(t, 90*time.Second, cfg.Manager.CallTimeout)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
manager:
  address: dsm.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4119, cfg.Manager.Port)
	assert.True(t, cfg.Manager.VerifyTLS)
	assert.Equal(t, 30*time.Second, cfg.Manager.CallTimeout)
}

func TestLoadMissingAddress(t *testing.T) {
	path := writeConfig(t, `
manager:
  port: 4119
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "address")
}

func TestLoadBadPort(t *testing.T) {
	path := writeConfig(t, `
manager:
  address: dsm.example.com
  port: 99999
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "port")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
