package warehouse

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

// Warehouse writes job records into ClickHouse for ad-hoc analysis
// outside the dashboards.
type Warehouse struct {
	conn      clickhouse.Conn
	logger    *zap.Logger
	batchSize int
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Warehouse, error) {
	hostAndParams := strings.Split(cfg.ClickHouseDSN, "?")
	host := hostAndParams[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	batchSize := cfg.ExportBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	return &Warehouse{
		conn:      conn,
		logger:    logger,
		batchSize: batchSize,
	}, nil
}

func (w *Warehouse) Close() error {
	return w.conn.Close()
}

// EnsureSchema creates the job_records table if it does not exist.
func (w *Warehouse) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS job_records (
			id UUID,
			dataset String,
			title String,
			category String,
			seniority String,
			company String,
			industry String,
			state String,
			city String,
			country String,
			salary Float64,
			skills Array(String),
			loaded_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (dataset, country, category, id)
	`

	if err := w.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create job_records table: %w", err)
	}
	return nil
}

// InsertRecords batch-inserts an entire dataset. Re-running an export
// appends; dedup is left to ClickHouse table settings or downstream
// queries keyed on the deterministic row IDs.
func (w *Warehouse) InsertRecords(ctx context.Context, datasetName string, records []models.JobRecord) error {
	loadedAt := time.Now()

	for start := 0; start < len(records); start += w.batchSize {
		end := start + w.batchSize
		if end > len(records) {
			end = len(records)
		}

		batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO job_records")
		if err != nil {
			return fmt.Errorf("failed to prepare batch: %w", err)
		}

		for _, rec := range records[start:end] {
			if err := batch.Append(
				rec.ID,
				datasetName,
				rec.Title,
				rec.Category,
				rec.Seniority,
				rec.Company,
				rec.Industry,
				rec.State,
				rec.City,
				rec.Country,
				rec.Salary,
				skillList(rec.Skills),
				loadedAt,
			); err != nil {
				return fmt.Errorf("failed to append record %s: %w", rec.ID, err)
			}
		}

		if err := batch.Send(); err != nil {
			return fmt.Errorf("failed to send batch: %w", err)
		}

		w.logger.Debug("sent warehouse batch",
			zap.String("dataset", datasetName),
			zap.Int("rows", end-start))
	}

	w.logger.Info("exported dataset to warehouse",
		zap.String("dataset", datasetName),
		zap.Int("rows", len(records)))
	return nil
}

func skillList(skills map[string]bool) []string {
	out := make([]string, 0, len(skills))
	for skill, present := range skills {
		if present {
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}
