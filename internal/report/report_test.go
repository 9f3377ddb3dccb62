package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dricdias/telegram-bot/internal/storage"
)

func newTestReporter(t *testing.T) (*Reporter, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.Options{BaseDir: t.TempDir()})
	return New(store, nil), store
}

func seed(t *testing.T, store *storage.Store, category string, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := store.Save(context.Background(), category, name, strings.NewReader("x"), "document"); err != nil {
			t.Fatalf("seed %s/%s: %v", category, name, err)
		}
	}
}

func TestStats(t *testing.T) {
	r, store := newTestReporter(t)
	seed(t, store, "documentos", "a.pdf", "b.pdf", "c.pdf")
	seed(t, store, "fotos", "praia.jpg")

	stats, err := r.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalCategories != 2 {
		t.Fatalf("TotalCategories = %d", stats.TotalCategories)
	}
	if stats.TotalFiles != 4 {
		t.Fatalf("TotalFiles = %d", stats.TotalFiles)
	}
	if stats.LargestCategory != "documentos" || stats.LargestCategoryCount != 3 {
		t.Fatalf("largest = %q (%d)", stats.LargestCategory, stats.LargestCategoryCount)
	}
	if stats.NewestCategory == "" {
		t.Fatal("NewestCategory empty")
	}
}

func TestDashboardMessageEmpty(t *testing.T) {
	r, _ := newTestReporter(t)

	msg, err := r.DashboardMessage(context.Background())
	if err != nil {
		t.Fatalf("DashboardMessage: %v", err)
	}
	if !strings.Contains(msg, "Nenhuma categoria encontrada") {
		t.Fatalf("message = %q", msg)
	}
}

func TestDashboardMessageWithData(t *testing.T) {
	r, store := newTestReporter(t)
	seed(t, store, "docs", "a.txt")

	msg, err := r.DashboardMessage(context.Background())
	if err != nil {
		t.Fatalf("DashboardMessage: %v", err)
	}
	for _, want := range []string{
		"*DASHBOARD DE CATEGORIAS*",
		"*Total de Categorias:* 1",
		"*Total de Arquivos:* 1",
		"*Categoria Mais Utilizada:* docs (1 arquivos)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestChartsNoData(t *testing.T) {
	r, _ := newTestReporter(t)
	ctx := context.Background()

	if _, err := r.BarChart(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("BarChart err = %v", err)
	}
	if _, err := r.PieChart(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("PieChart err = %v", err)
	}
	if _, err := r.GrowthChart(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("GrowthChart err = %v", err)
	}
}

func TestChartsRenderPNG(t *testing.T) {
	r, store := newTestReporter(t)
	seed(t, store, "docs", "a.txt", "b.txt")
	seed(t, store, "fotos", "c.jpg")
	ctx := context.Background()

	pngHeader := []byte{0x89, 'P', 'N', 'G'}

	for name, render := range map[string]func(context.Context) ([]byte, error){
		"bar":    r.BarChart,
		"pie":    r.PieChart,
		"growth": r.GrowthChart,
	} {
		data, err := render(ctx)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(data, pngHeader) {
			t.Errorf("%s: output is not a PNG", name)
		}
	}
}

func TestPieChartSkipsEmptyCategories(t *testing.T) {
	r, store := newTestReporter(t)
	seed(t, store, "docs", "a.txt")
	if _, err := store.EnsureCategory("vazia"); err != nil {
		t.Fatal(err)
	}

	data, err := r.PieChart(context.Background())
	if err != nil {
		t.Fatalf("PieChart: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty chart output")
	}
}
