package bootstrap

import (
	"context"
	"log/slog"

	"github.com/zhaomaota/word-stone/internal/catalog"
	"github.com/zhaomaota/word-stone/internal/config"
	"github.com/zhaomaota/word-stone/internal/session"
	"github.com/zhaomaota/word-stone/internal/validation"
)

// LoadCatalog reads the configured vocabulary. A failed load is logged and
// served from the seed catalog; the error travels in the returned state so
// every session can announce the fallback.
func LoadCatalog(ctx context.Context, cfg *config.Config) session.CatalogState {
	loader := catalog.NewLoader(validation.NewSchemaValidator(), cfg.VocabularySchemaPath)

	c, stats, err := loader.LoadFile(ctx, cfg.VocabularyPath)
	if err != nil {
		slog.Warn(LogMsgCatalogDegraded, "path", cfg.VocabularyPath, "error", err)
	}
	return session.CatalogState{Catalog: c, Stats: stats, LoadErr: err}
}
