// Package storage persists categorized files under a base directory.
//
// Layout is one directory per category with plain files inside. Names
// are sanitized against path separators, so a category or file never
// escapes the base directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"log/slog"

	"github.com/dricdias/telegram-bot/core/logger"
)

var (
	ErrNotFound    = errors.New("storage: não encontrado")
	ErrExists      = errors.New("storage: já existe")
	ErrInvalidName = errors.New("storage: nome inválido")
)

// FileRef identifies a stored file.
type FileRef struct {
	Category string
	Name     string
}

// Entry describes a stored file with its metadata.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Recorder receives notifications about committed storage changes.
// Implementations must tolerate being called concurrently.
type Recorder interface {
	RecordSave(ctx context.Context, category, name string, size int64, kind string)
	RecordDelete(ctx context.Context, category, name string)
}

// Options configures a Store.
type Options struct {
	// BaseDir is the root of the category tree. Defaults to "arquivos".
	BaseDir string
	// Recorder is notified after successful saves and deletes. Optional.
	Recorder Recorder
}

// Store is a filesystem-backed category/file store.
type Store struct {
	baseDir  string
	recorder Recorder

	now func() time.Time
}

func NewStore(opts Options) *Store {
	base := strings.TrimSpace(opts.BaseDir)
	if base == "" {
		base = "arquivos"
	}
	return &Store{
		baseDir:  base,
		recorder: opts.Recorder,
		now:      time.Now,
	}
}

// BaseDir returns the root directory of the store.
func (s *Store) BaseDir() string { return s.baseDir }

// EnsureCategory creates the category directory when missing and
// returns its path.
func (s *Store) EnsureCategory(name string) (string, error) {
	clean, err := sanitizeComponent(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: criar categoria %q: %w", clean, err)
	}
	return dir, nil
}

// ListCategories returns all category names, sorted.
func (s *Store) ListCategories() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: listar categorias: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListFiles returns the file names in a category, sorted. A missing
// category yields ErrNotFound.
func (s *Store) ListFiles(category string) ([]string, error) {
	entries, err := s.ListEntries(category)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// ListEntries returns files in a category with size and mtime, sorted
// by name.
func (s *Store) ListEntries(category string) ([]Entry, error) {
	clean, err := sanitizeComponent(category)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(s.baseDir, clean)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("categoria %q: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("storage: listar %q: %w", clean, err)
	}
	var out []Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CategoryModTime returns when a category directory last changed.
func (s *Store) CategoryModTime(category string) (time.Time, error) {
	clean, err := sanitizeComponent(category)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(filepath.Join(s.baseDir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("categoria %q: %w", clean, ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("storage: stat categoria %q: %w", clean, err)
	}
	return info.ModTime(), nil
}

// Search finds files whose "categoria/arquivo" path contains the term,
// case-insensitively. Results are sorted by category then name.
func (s *Store) Search(term string) ([]FileRef, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, nil
	}
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	var out []FileRef
	for _, cat := range categories {
		files, err := s.ListFiles(cat)
		if err != nil {
			continue
		}
		for _, name := range files {
			full := strings.ToLower(cat + "/" + name)
			if strings.Contains(full, needle) {
				out = append(out, FileRef{Category: cat, Name: name})
			}
		}
	}
	return out, nil
}

// Path resolves the on-disk path of a stored file, checking existence.
func (s *Store) Path(category, name string) (string, error) {
	cleanCat, err := sanitizeComponent(category)
	if err != nil {
		return "", err
	}
	cleanName, err := sanitizeComponent(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, cleanCat, cleanName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s/%s: %w", cleanCat, cleanName, ErrNotFound)
		}
		return "", fmt.Errorf("storage: stat %s/%s: %w", cleanCat, cleanName, err)
	}
	return path, nil
}

// Rename renames a file inside its category. The old file must exist
// and the new name must be free.
func (s *Store) Rename(category, oldName, newName string) error {
	cleanCat, err := sanitizeComponent(category)
	if err != nil {
		return err
	}
	cleanOld, err := sanitizeComponent(oldName)
	if err != nil {
		return err
	}
	cleanNew, err := sanitizeComponent(newName)
	if err != nil {
		return err
	}

	oldPath := filepath.Join(s.baseDir, cleanCat, cleanOld)
	newPath := filepath.Join(s.baseDir, cleanCat, cleanNew)

	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s/%s: %w", cleanCat, cleanOld, ErrNotFound)
		}
		return fmt.Errorf("storage: stat %s: %w", oldPath, err)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("%s/%s: %w", cleanCat, cleanNew, ErrExists)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("storage: renomear %s: %w", oldPath, err)
	}
	return nil
}

// Delete removes a file and notifies the recorder.
func (s *Store) Delete(ctx context.Context, category, name string) error {
	cleanCat, err := sanitizeComponent(category)
	if err != nil {
		return err
	}
	cleanName, err := sanitizeComponent(name)
	if err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, cleanCat, cleanName)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s/%s: %w", cleanCat, cleanName, ErrNotFound)
		}
		return fmt.Errorf("storage: excluir %s: %w", path, err)
	}
	if s.recorder != nil {
		s.recorder.RecordDelete(ctx, cleanCat, cleanName)
	}
	logger.Debug(ctx, "store", "file deleted",
		slog.String("category", cleanCat),
		slog.String("file", cleanName),
	)
	return nil
}

// Save writes content under category/name. On a name collision the
// final name gets a timestamp suffix before the extension, so an
// existing file is never overwritten. Returns the final name.
func (s *Store) Save(ctx context.Context, category, name string, src io.Reader, kind string) (string, error) {
	cleanCat, err := sanitizeComponent(category)
	if err != nil {
		return "", err
	}
	cleanName, err := sanitizeComponent(name)
	if err != nil {
		return "", err
	}
	if _, err := s.EnsureCategory(cleanCat); err != nil {
		return "", err
	}

	finalName := cleanName
	path := filepath.Join(s.baseDir, cleanCat, finalName)
	if _, err := os.Stat(path); err == nil {
		finalName = collisionName(cleanName, s.now())
		path = filepath.Join(s.baseDir, cleanCat, finalName)
	}

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: criar %s: %w", path, err)
	}
	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: gravar %s: %w", path, err)
	}

	if s.recorder != nil {
		s.recorder.RecordSave(ctx, cleanCat, finalName, size, kind)
	}
	logger.Debug(ctx, "store", "file saved",
		slog.String("category", cleanCat),
		slog.String("file", finalName),
		slog.Int64("size", size),
	)
	return finalName, nil
}

// SaveFile moves a staged file into the store and removes the staging
// copy on success.
func (s *Store) SaveFile(ctx context.Context, category, name, srcPath, kind string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("storage: abrir temporário %s: %w", srcPath, err)
	}
	finalName, err := s.Save(ctx, category, name, src, kind)
	src.Close()
	if err != nil {
		return "", err
	}
	if err := os.Remove(srcPath); err != nil && !os.IsNotExist(err) {
		logger.Warn(ctx, "store", "staging cleanup failed",
			slog.String("file", srcPath),
			slog.String("err", err.Error()),
		)
	}
	return finalName, nil
}

// SaveNote stores a text note named "<título>_<timestamp>.txt".
func (s *Store) SaveNote(ctx context.Context, category, title, body string) (string, error) {
	name := NoteFilename(title, s.now())
	return s.Save(ctx, category, name, strings.NewReader(body), "note")
}

// NoteFilename builds the canonical note name from a title.
func NoteFilename(title string, ts time.Time) string {
	clean := strings.TrimSpace(title)
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "" {
		clean = "nota"
	}
	return fmt.Sprintf("%s_%s.txt", clean, ts.Format("20060102_150405"))
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImage reports whether the file name carries an image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

func collisionName(name string, ts time.Time) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", base, ts.Format("20060102_150405"), ext)
}

func sanitizeComponent(name string) (string, error) {
	clean := strings.TrimSpace(name)
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "" || clean == "." || clean == ".." {
		return "", ErrInvalidName
	}
	return clean, nil
}
