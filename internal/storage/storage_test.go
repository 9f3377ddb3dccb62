package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(Options{BaseDir: t.TempDir()})
	s.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return s
}

func mustSave(t *testing.T, s *Store, category, name, content string) string {
	t.Helper()
	final, err := s.Save(context.Background(), category, name, strings.NewReader(content), "document")
	if err != nil {
		t.Fatalf("Save(%s/%s): %v", category, name, err)
	}
	return final
}

func TestEnsureCategoryAndList(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.EnsureCategory("documentos"); err != nil {
		t.Fatalf("EnsureCategory: %v", err)
	}
	if _, err := s.EnsureCategory("fotos"); err != nil {
		t.Fatalf("EnsureCategory: %v", err)
	}

	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "documentos" || cats[1] != "fotos" {
		t.Fatalf("ListCategories = %v", cats)
	}
}

func TestListCategoriesEmptyBase(t *testing.T) {
	s := NewStore(Options{BaseDir: filepath.Join(t.TempDir(), "missing")})
	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 0 {
		t.Fatalf("ListCategories = %v, want empty", cats)
	}
}

func TestSaveAndListFiles(t *testing.T) {
	s := newTestStore(t)

	final := mustSave(t, s, "docs", "relatorio.pdf", "conteudo")
	if final != "relatorio.pdf" {
		t.Fatalf("final name = %q", final)
	}

	files, err := s.ListFiles("docs")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "relatorio.pdf" {
		t.Fatalf("ListFiles = %v", files)
	}
}

func TestSaveCollisionAppendsTimestamp(t *testing.T) {
	s := newTestStore(t)

	mustSave(t, s, "docs", "nota.txt", "primeira")
	final := mustSave(t, s, "docs", "nota.txt", "segunda")

	if final != "nota_20240315_103000.txt" {
		t.Fatalf("collision name = %q", final)
	}

	data, err := os.ReadFile(filepath.Join(s.BaseDir(), "docs", "nota.txt"))
	if err != nil || string(data) != "primeira" {
		t.Fatalf("original overwritten: %q, err=%v", data, err)
	}
}

func TestListFilesMissingCategory(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ListFiles("inexistente")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	mustSave(t, s, "Documentos", "Relatorio_Anual.pdf", "x")
	mustSave(t, s, "fotos", "praia.jpg", "x")

	hits, err := s.Search("RELATORIO")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Category != "Documentos" || hits[0].Name != "Relatorio_Anual.pdf" {
		t.Fatalf("Search = %+v", hits)
	}

	// Term may match the category part of the path as well.
	hits, err = s.Search("foto")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "praia.jpg" {
		t.Fatalf("Search = %+v", hits)
	}
}

func TestRename(t *testing.T) {
	s := newTestStore(t)
	mustSave(t, s, "docs", "velho.txt", "x")

	if err := s.Rename("docs", "velho.txt", "novo.txt"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := s.Path("docs", "novo.txt"); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}

	if err := s.Rename("docs", "nao_existe.txt", "x.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	mustSave(t, s, "docs", "ocupado.txt", "x")
	if err := s.Rename("docs", "novo.txt", "ocupado.txt"); !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	mustSave(t, s, "docs", "a.txt", "x")

	if err := s.Delete(context.Background(), "docs", "a.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(context.Background(), "docs", "a.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSanitizationBlocksTraversal(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.EnsureCategory(".."); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("err = %v, want ErrInvalidName", err)
	}

	final := mustSave(t, s, "docs", "sub/arquivo.txt", "x")
	if final != "sub_arquivo.txt" {
		t.Fatalf("final = %q, want separators replaced", final)
	}
}

func TestSaveFileMovesStaging(t *testing.T) {
	s := newTestStore(t)

	staging := filepath.Join(t.TempDir(), "tmp_upload")
	if err := os.WriteFile(staging, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	final, err := s.SaveFile(context.Background(), "docs", "upload.bin", staging, "document")
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if final != "upload.bin" {
		t.Fatalf("final = %q", final)
	}
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Fatalf("staging file not removed: %v", err)
	}
}

func TestSaveNoteName(t *testing.T) {
	s := newTestStore(t)

	final, err := s.SaveNote(context.Background(), "notas", "ideia/projeto", "corpo")
	if err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if final != "ideia_projeto_20240315_103000.txt" {
		t.Fatalf("final = %q", final)
	}
}

type captureRecorder struct {
	saves   []string
	deletes []string
}

func (r *captureRecorder) RecordSave(_ context.Context, category, name string, _ int64, _ string) {
	r.saves = append(r.saves, category+"/"+name)
}

func (r *captureRecorder) RecordDelete(_ context.Context, category, name string) {
	r.deletes = append(r.deletes, category+"/"+name)
}

func TestRecorderNotified(t *testing.T) {
	rec := &captureRecorder{}
	s := NewStore(Options{BaseDir: t.TempDir(), Recorder: rec})

	if _, err := s.Save(context.Background(), "docs", "a.txt", strings.NewReader("x"), "document"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(context.Background(), "docs", "a.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(rec.saves) != 1 || rec.saves[0] != "docs/a.txt" {
		t.Fatalf("saves = %v", rec.saves)
	}
	if len(rec.deletes) != 1 || rec.deletes[0] != "docs/a.txt" {
		t.Fatalf("deletes = %v", rec.deletes)
	}
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp"} {
		if !IsImage(name) {
			t.Errorf("IsImage(%q) = false", name)
		}
	}
	for _, name := range []string{"a.pdf", "b.txt", "c.mp4", "semextensao"} {
		if IsImage(name) {
			t.Errorf("IsImage(%q) = true", name)
		}
	}
}
