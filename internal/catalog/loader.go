package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/validation"
)

var errEmptySource = errors.New("vocabulary source has no entries")

// Loader reads vocabulary files and builds catalogs
type Loader struct {
	validator  validation.SchemaValidator
	schemaPath string
}

// NewLoader creates a loader. JSON sources are validated against schemaPath
// when both the validator and the path are set.
func NewLoader(validator validation.SchemaValidator, schemaPath string) *Loader {
	return &Loader{validator: validator, schemaPath: schemaPath}
}

// LoadFile reads the vocabulary at path and builds the catalog.
// Any failure to obtain entries yields the seed catalog together with an error
// wrapping domain.ErrCatalogLoadFailed, so the caller always has a usable catalog.
func (l *Loader) LoadFile(ctx context.Context, path string) (domain.Catalog, domain.LoadStats, error) {
	log := logger.FromContext(ctx)

	raw, err := l.readSource(ctx, path)
	if err == nil && len(raw) == 0 {
		err = errEmptySource
	}
	if err != nil {
		log.Warn(LogMsgCatalogFallback, "path", path, "error", err)
		catalog, stats := Load(SeedEntries())
		return catalog, stats, fmt.Errorf("%w: %s: %w", domain.ErrCatalogLoadFailed, path, err)
	}

	catalog, stats := Load(raw)
	log.Info(LogMsgCatalogLoaded,
		"path", path,
		"total", stats.TotalInput,
		"unique", stats.UniqueCount,
		"duplicates", stats.DuplicateCount)
	return catalog, stats, nil
}

func (l *Loader) readSource(ctx context.Context, path string) ([]domain.RawEntry, error) {
	resolved, err := validation.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	var raw []domain.RawEntry
	switch ext := strings.ToLower(filepath.Ext(resolved)); ext {
	case ExtJSON:
		raw, err = l.readJSON(resolved)
	case ExtCSV:
		raw, err = readCSV(resolved)
	case ExtXLSX:
		raw, err = readXLSX(resolved)
	default:
		return nil, fmt.Errorf("unsupported vocabulary format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range raw {
		if _, ok := domain.ParseRarity(entry.Rarity); !ok {
			logger.FromContext(ctx).Warn(LogMsgUnknownRarity, "word", entry.Word, "rarity", entry.Rarity)
		}
	}
	return raw, nil
}

func (l *Loader) readJSON(path string) ([]domain.RawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	if l.validator != nil && l.schemaPath != "" {
		if err := l.validator.ValidateBytes(data, l.schemaPath); err != nil {
			return nil, err
		}
	}

	var raw []domain.RawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary file: %w", err)
	}
	return raw, nil
}

func readCSV(path string) ([]domain.RawEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, record)
	}
	return parseRows(rows), nil
}

func readXLSX(path string) ([]domain.RawEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptySource
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return parseRows(rows), nil
}

// parseRows maps tabular rows to raw entries. A header row naming the word,
// definition and rarity columns is honoured; without one the columns are
// taken positionally in that order. Rows without a word are skipped.
func parseRows(rows [][]string) []domain.RawEntry {
	if len(rows) == 0 {
		return nil
	}

	wordCol, defCol, rarityCol := 0, 1, 2
	start := 0
	if header := indexHeader(rows[0]); header != nil {
		wordCol = header[ColumnWord]
		defCol = columnOr(header, ColumnDefinition, -1)
		rarityCol = columnOr(header, ColumnRarity, -1)
		start = 1
	}

	entries := make([]domain.RawEntry, 0, len(rows)-start)
	for _, row := range rows[start:] {
		word := cell(row, wordCol)
		if strings.TrimSpace(word) == "" {
			continue
		}
		entries = append(entries, domain.RawEntry{
			Word:       word,
			Definition: cell(row, defCol),
			Rarity:     cell(row, rarityCol),
		})
	}
	return entries
}

func indexHeader(row []string) map[string]int {
	header := make(map[string]int, len(row))
	for i, name := range row {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := header[ColumnWord]; !ok {
		return nil
	}
	return header
}

func columnOr(header map[string]int, name string, fallback int) int {
	if i, ok := header[name]; ok {
		return i
	}
	return fallback
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
