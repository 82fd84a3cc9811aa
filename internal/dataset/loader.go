package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/errors"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobmarket/dataset")

const skillColumnPrefix = "skill_"

var usaRequiredColumns = []string{
	"job_title", "job_category", "seniority", "company",
	"industry", "state", "city", "avg_salary_k",
}

var compareRequiredColumns = []string{
	"country", "job_category", "seniority", "company", "city", "salary",
}

// Store loads CSV datasets and memoizes them for the life of the
// process. A changed file on disk only takes effect after Invalidate.
type Store struct {
	logger *zap.Logger

	mu     sync.RWMutex
	loaded map[Key]*Dataset
	paths  map[Key]string
}

func NewStore(cfg *config.Config, logger *zap.Logger) *Store {
	return &Store{
		logger: logger,
		loaded: make(map[Key]*Dataset),
		paths: map[Key]string{
			KeyUSA:     filepath.Join(cfg.DataDir, cfg.USADatasetFile),
			KeyCompare: filepath.Join(cfg.DataDir, cfg.CompareDatasetFile),
		},
	}
}

// Dataset returns the memoized table for key, loading it on first use.
func (s *Store) Dataset(ctx context.Context, key Key) (*Dataset, error) {
	s.mu.RLock()
	ds, ok := s.loaded[key]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.loaded[key]; ok {
		return ds, nil
	}

	path, ok := s.paths[key]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("unknown dataset %q", key), nil)
	}

	ds, err := s.load(ctx, key, path)
	if err != nil {
		return nil, err
	}
	s.loaded[key] = ds
	return ds, nil
}

// Invalidate drops every memoized table so the next access re-reads
// the CSV files.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = make(map[Key]*Dataset)
	s.logger.Info("dataset store invalidated")
}

func (s *Store) load(ctx context.Context, key Key, path string) (*Dataset, error) {
	_, span := tracer.Start(ctx, "Store.load")
	defer span.End()
	span.SetAttributes(
		telemetry.String("dataset.key", string(key)),
		telemetry.String("dataset.path", path),
	)

	file, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Unavailable("opening dataset file", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn("failed to close dataset file", zap.Error(cerr))
		}
	}()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		span.RecordError(err)
		return nil, errors.InvalidInput("reading dataset CSV", err)
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput("dataset CSV is empty", nil)
	}

	header := records[0]
	cols, err := indexColumns(header, requiredColumns(key))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	skillCols, skillNames := indexSkillColumns(header)

	ds := &Dataset{
		Name:   string(key),
		Rows:   make([]models.JobRecord, 0, len(records)-1),
		Skills: skillNames,
	}

	skipped := 0
	for _, row := range records[1:] {
		rec, ok := parseRow(key, row, cols, skillCols, skillNames)
		if !ok {
			skipped++
			continue
		}
		ds.Rows = append(ds.Rows, rec)
	}

	span.SetAttributes(
		telemetry.Int("dataset.rows", len(ds.Rows)),
		telemetry.Int("dataset.skills", len(ds.Skills)),
	)
	s.logger.Info("loaded dataset",
		zap.String("key", string(key)),
		zap.String("path", path),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("skills", len(ds.Skills)),
		zap.Int("skipped_rows", skipped))

	return ds, nil
}

func requiredColumns(key Key) []string {
	if key == KeyCompare {
		return compareRequiredColumns
	}
	return usaRequiredColumns
}

func indexColumns(header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("dataset missing required column %q", name), nil)
		}
	}
	return cols, nil
}

func indexSkillColumns(header []string) ([]int, []string) {
	var indices []int
	var names []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		if strings.HasPrefix(name, skillColumnPrefix) {
			indices = append(indices, i)
			names = append(names, skillDisplayName(name))
		}
	}
	return indices, names
}

// skillDisplayName turns "skill_power_bi" into "Power Bi".
func skillDisplayName(column string) string {
	raw := strings.TrimPrefix(column, skillColumnPrefix)
	words := strings.Split(raw, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func parseRow(key Key, row []string, cols map[string]int, skillCols []int, skillNames []string) (models.JobRecord, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec models.JobRecord
	rec.Category = field("job_category")
	rec.Seniority = field("seniority")
	rec.Company = field("company")
	rec.City = field("city")

	var salaryStr string
	if key == KeyCompare {
		rec.Country = field("country")
		salaryStr = field("salary")
	} else {
		rec.Country = models.CountryUSA
		rec.Title = field("job_title")
		rec.Industry = field("industry")
		rec.State = StateName(field("state"))
		salaryStr = field("avg_salary_k")
	}

	salary, err := strconv.ParseFloat(salaryStr, 64)
	if err != nil {
		return models.JobRecord{}, false
	}
	rec.Salary = salary

	rec.Skills = make(map[string]bool, len(skillCols))
	for j, i := range skillCols {
		if i < len(row) && parseFlag(row[i]) {
			rec.Skills[skillNames[j]] = true
		}
	}

	rec.ID = models.RecordID(&rec)
	return rec, true
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
