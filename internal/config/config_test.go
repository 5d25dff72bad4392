package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := loadConfig(viper.New())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "4020", cfg.GrpcPort)
	assert.Equal(t, "gzip", cfg.Compression)
	assert.Equal(t, 5000, cfg.MaxWords)
	assert.Equal(t, "@every 5m", cfg.Jobs.RelationshipSync)
	assert.Empty(t, cfg.AuthToken)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("THIRDPLACE_GRPC_PORT", "5000")
	t.Setenv("THIRDPLACE_CONTENT_COMPRESSION", "brotli")
	t.Setenv("THIRDPLACE_EDITOR_MAX_WORDS", "250")
	t.Setenv("THIRDPLACE_AUTH_TOKEN", "secret")

	cfg := loadConfig(viper.New())
	assert.Equal(t, "5000", cfg.GrpcPort)
	assert.Equal(t, "brotli", cfg.Compression)
	assert.Equal(t, 250, cfg.MaxWords)
	assert.Equal(t, "secret", cfg.AuthToken)
}

func TestOpenDb(t *testing.T) {
	_, err := OpenDb(&Config{DB: DBConfig{Driver: "mongo"}})
	assert.Error(t, err)

	db, err := OpenDb(&Config{DB: DBConfig{Driver: "sqlite", DSN: t.TempDir() + "/x/test.db"}})
	require.NoError(t, err)
	assert.NotNil(t, db)
}
