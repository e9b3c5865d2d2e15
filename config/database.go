package config

import (
	"fmt"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStore connects the document store selected by StoreDriver and runs
// its migration.
func OpenStore(cfg *Config) (store.Store, error) {
	opts := []store.Option{store.WithPartitioned(models.PartitionedCollections...)}

	if cfg.StoreDriver == DriverMemory {
		utils.LogWarn("Using in-memory document store; data is lost on restart")
		return store.NewMemory(opts...), nil
	}

	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	docs := store.NewGorm(db, opts...)
	if err := docs.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}
	utils.LogInfo("Connected to postgres at %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return docs, nil
}
