package config

import (
	"context"
	"os"
	"testing"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	_, err := Process()
	assert.Error(t, err)
}

func TestProcessDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("ENV", "Production")

	cfg, err := Process()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.True(t, cfg.IsProduction())
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "password=pw")
}

func TestProcessRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Process()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestSubConfigs(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "text", SMTPHost: "smtp.example.com", SMTPPort: 2525, SMTPFrom: "shop@example.com"}
	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.Equal(t, "text", cfg.Logger().Format)
	assert.Equal(t, 2525, cfg.Email().Port)
	assert.Equal(t, "shop@example.com", cfg.Email().From)
}

func TestOpenStoreMemoryPartitionsByUser(t *testing.T) {
	st, err := OpenStore(&Config{StoreDriver: DriverMemory})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = st.Create(ctx, models.CollectionCart, "u1", store.Fields{"product_id": "p1"})
	require.NoError(t, err)

	docs, err := st.Find(ctx, models.CollectionCart, "u2")
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = st.Find(ctx, models.CollectionCart, "u1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
