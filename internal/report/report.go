// Package report builds the dashboard statistics and charts.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/dricdias/telegram-bot/core/logger"
	"github.com/dricdias/telegram-bot/internal/journal"
	"github.com/dricdias/telegram-bot/internal/storage"
)

// ErrNoData signals that there is nothing to plot yet.
var ErrNoData = errors.New("report: sem dados")

// Stats aggregates the numbers shown on the dashboard.
type Stats struct {
	TotalCategories      int
	TotalFiles           int
	LargestCategory      string
	LargestCategoryCount int
	NewestCategory       string
	NewestCategoryAt     time.Time
}

// Reporter computes stats and renders charts from the store, using the
// journal for growth history when one is configured.
type Reporter struct {
	store   *storage.Store
	journal *journal.Journal
}

func New(store *storage.Store, jrnl *journal.Journal) *Reporter {
	return &Reporter{store: store, journal: jrnl}
}

// Stats walks the store and aggregates the dashboard numbers.
func (r *Reporter) Stats(ctx context.Context) (Stats, error) {
	categories, err := r.store.ListCategories()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalCategories: len(categories)}
	var newestAt time.Time

	for _, cat := range categories {
		files, err := r.store.ListFiles(cat)
		if err != nil {
			continue
		}
		stats.TotalFiles += len(files)
		if len(files) > stats.LargestCategoryCount {
			stats.LargestCategory = cat
			stats.LargestCategoryCount = len(files)
		}
		if at, err := r.store.CategoryModTime(cat); err == nil && at.After(newestAt) {
			newestAt = at
			stats.NewestCategory = cat
			stats.NewestCategoryAt = at
		}
	}

	// The journal knows the real creation order when available.
	if name, at, ok := r.journal.NewestCategory(ctx); ok {
		stats.NewestCategory = name
		stats.NewestCategoryAt = at
	}

	logger.Debug(ctx, "report", "stats computed",
		slog.Int("categories", stats.TotalCategories),
		slog.Int("files", stats.TotalFiles),
	)
	return stats, nil
}

// DashboardMessage renders the dashboard text in Markdown.
func (r *Reporter) DashboardMessage(ctx context.Context) (string, error) {
	stats, err := r.Stats(ctx)
	if err != nil {
		return "", err
	}

	if stats.TotalCategories == 0 {
		return "📊 Dashboard\n\nNenhuma categoria encontrada. Use o comando /menu e crie uma categoria para começar.", nil
	}

	var b strings.Builder
	b.WriteString("📊 *DASHBOARD DE CATEGORIAS*\n\n")
	fmt.Fprintf(&b, "📁 *Total de Categorias:* %d\n", stats.TotalCategories)
	fmt.Fprintf(&b, "📄 *Total de Arquivos:* %d\n\n", stats.TotalFiles)

	if stats.LargestCategory != "" {
		fmt.Fprintf(&b, "🏆 *Categoria Mais Utilizada:* %s (%d arquivos)\n",
			stats.LargestCategory, stats.LargestCategoryCount)
	}
	if stats.NewestCategory != "" {
		fmt.Fprintf(&b, "🆕 *Categoria Mais Recente:* %s (%s)\n",
			stats.NewestCategory, stats.NewestCategoryAt.Format("02/01/2006"))
	}

	b.WriteString("\nEscolha uma visualização abaixo para analisar suas categorias:")
	return b.String(), nil
}

// growthByDay returns save counts per day for one category, preferring
// the journal and falling back to file timestamps.
func (r *Reporter) growthByDay(ctx context.Context, category string) (map[time.Time]int, error) {
	if points, err := r.journal.GrowthByDay(ctx, category); err == nil && len(points) > 0 {
		out := make(map[time.Time]int, len(points))
		for _, p := range points {
			out[dayOf(p.Day)] += p.Count
		}
		return out, nil
	}

	entries, err := r.store.ListEntries(category)
	if err != nil {
		return nil, err
	}
	out := make(map[time.Time]int)
	for _, e := range entries {
		out[dayOf(e.ModTime)]++
	}
	return out, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
