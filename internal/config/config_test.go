package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
parser:
  skill_vocabulary: ["python", "golang"]
  parse_timeout: "10s"
mysql:
  host: "db.internal"
  port: 3306
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, []string{"python", "golang"}, cfg.Parser.SkillVocabulary)
	assert.Equal(t, "10s", cfg.Parser.ParseTimeout)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "30s", cfg.Parser.ParseTimeout)
	assert.Equal(t, "resume-originals", cfg.MinIO.OriginalsBucket)
	assert.Equal(t, "resume.events", cfg.RabbitMQ.ResumeEventsExchange)
	assert.Equal(t, 5, cfg.RabbitMQ.ConsumerWorkers)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mysql:\n  password: from_file\n"), 0644))

	t.Setenv("MYSQL_PASSWORD", "from_env")
	t.Setenv("API_KEYS", "k1,k2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.MySQL.Password)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
}

func TestLoadConfig_MissingFileInTest(t *testing.T) {
	// go test 环境下找不到配置文件时回退到默认配置
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}
