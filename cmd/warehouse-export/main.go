package main

import (
	"context"
	"log"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/warehouse"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	wh, err := warehouse.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to warehouse", zap.Error(err))
	}
	defer func() {
		if err := wh.Close(); err != nil {
			logger.Warn("failed to close warehouse connection", zap.Error(err))
		}
	}()

	if err := wh.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure warehouse schema", zap.Error(err))
	}

	store := dataset.NewStore(cfg, logger)
	for _, key := range []dataset.Key{dataset.KeyUSA, dataset.KeyCompare} {
		ds, err := store.Dataset(ctx, key)
		if err != nil {
			logger.Fatal("failed to load dataset",
				zap.String("key", string(key)),
				zap.Error(err))
		}
		if err := wh.InsertRecords(ctx, ds.Name, ds.Rows); err != nil {
			logger.Fatal("failed to export dataset",
				zap.String("key", string(key)),
				zap.Error(err))
		}
	}

	logger.Info("export complete")
}
