package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every known key; viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	for key := range envDefaults {
		t.Setenv(strings.ToUpper(key), "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	probePath := writeFile(t, "probe.yml", "working_folder: /tmp/x\n")
	t.Setenv("GRATIA_CONFIG_PATH", probePath)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "/srv/kapel", cfg.Queue.OutputPath)
	assert.Equal(t, RemovalModeAfterFinalize, cfg.Queue.RemovalMode)
	assert.Equal(t, "grid", cfg.Infrastructure.Type)
	assert.Equal(t, "APEL-KUBERNETES", cfg.Infrastructure.Description)
	assert.Equal(t, 0, cfg.Infrastructure.NodeCount)
	assert.Equal(t, 0, cfg.Infrastructure.Processors)
	assert.Equal(t, probePath, cfg.Gratia.ConfigPath)
	assert.Empty(t, cfg.Gratia.Reporter)
	assert.Empty(t, cfg.Metrics.PushgatewayURL)
	assert.Equal(t, "gratia_output", cfg.Metrics.Job)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	probePath := writeFile(t, "probe.yml", "working_folder: /tmp/x\n")
	envFile := writeFile(t, "gratia.env", `OUTPUT_PATH=/data/queue
INFRASTRUCTURE_TYPE=local
NODECOUNT=12
PROCESSORS=48
GRATIA_CONFIG_PATH=`+probePath+`
GRATIA_REPORTER=kapel
GRATIA_SERVICE=kubernetes
GRATIA_PROBE_MANAGER=gratia-output
GRATIA_PROBE_VERSION=1.2.0
LOG_LEVEL=debug
`)

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "/data/queue", cfg.Queue.OutputPath)
	assert.Equal(t, "local", cfg.Infrastructure.Type)
	assert.Equal(t, 12, cfg.Infrastructure.NodeCount)
	assert.Equal(t, 48, cfg.Infrastructure.Processors)
	assert.Equal(t, "kapel", cfg.Gratia.Reporter)
	assert.Equal(t, "kubernetes", cfg.Gratia.Service)
	assert.Equal(t, "gratia-output", cfg.Gratia.ProbeManager)
	assert.Equal(t, "1.2.0", cfg.Gratia.ProbeVersion)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_EnvironmentWinsOverEnvFile(t *testing.T) {
	clearEnv(t)
	probePath := writeFile(t, "probe.yml", "working_folder: /tmp/x\n")
	envFile := writeFile(t, "gratia.env", "OUTPUT_PATH=/from/file\nGRATIA_CONFIG_PATH="+probePath+"\n")
	t.Setenv("OUTPUT_PATH", "/from/env")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Queue.OutputPath)
}

func TestLoadConfig_MissingGratiaConfigPath(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "GRATIA_CONFIG_PATH (required)")
}

func TestLoadConfig_GratiaConfigPathDoesNotExist(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRATIA_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := LoadConfig("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRATIA_CONFIG_PATH (must name an existing file)")
}

func TestLoadConfig_InvalidRemovalMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRATIA_CONFIG_PATH", writeFile(t, "probe.yml", "working_folder: /tmp/x\n"))
	t.Setenv("QUEUE_REMOVAL_MODE", "never")

	cfg, err := LoadConfig("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUEUE_REMOVAL_MODE (oneof=after_finalize after_convert)")
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}

func TestLoadProbeConfig_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", `collector:
  transport: collector
  url: https://gratia.example.org:8880
  timeout: 10
  compress: true
bundle:
  size: 25
working_folder: /var/lib/gratia-output
lock_file: /run/gratia-output.lock
`)

	cfg, err := LoadProbeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, TransportCollector, cfg.Collector.Transport)
	assert.Equal(t, "https://gratia.example.org:8880", cfg.Collector.URL)
	assert.Equal(t, 10, cfg.Collector.Timeout)
	assert.True(t, cfg.Collector.Compress)
	assert.Equal(t, 25, cfg.Bundle.Size)
	assert.Equal(t, "/var/lib/gratia-output", cfg.WorkingFolder)
	assert.Equal(t, "/run/gratia-output.lock", cfg.LockFile)
}

func TestLoadProbeConfig_Defaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", "collector:\n  url: http://localhost:8880\n")

	cfg, err := LoadProbeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, TransportCollector, cfg.Collector.Transport)
	assert.Equal(t, 30, cfg.Collector.Timeout)
	assert.False(t, cfg.Collector.Compress)
	assert.Equal(t, 100, cfg.Bundle.Size)
	assert.Equal(t, "/var/lib/gratia-output", cfg.WorkingFolder)
	assert.Equal(t, "/var/lock/gratia-output.lock", cfg.LockFile)
}

func TestLoadProbeConfig_CollectorRequiresURL(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", "collector:\n  transport: collector\n")

	cfg, err := LoadProbeConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.url (required)")
}

func TestLoadProbeConfig_LumberjackRequiresEndpoint(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", "collector:\n  transport: lumberjack\n")

	cfg, err := LoadProbeConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.lumberjack_endpoint (required)")
}

func TestLoadProbeConfig_InvalidTransport(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", "collector:\n  transport: carrier-pigeon\n")

	cfg, err := LoadProbeConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.transport (oneof=collector lumberjack)")
}

func TestLoadProbeConfig_InvalidBundleSize(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "probe.yml", "collector:\n  url: http://localhost:8880\nbundle:\n  size: -1\n")

	cfg, err := LoadProbeConfig(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundle.size (min=1)")
}
