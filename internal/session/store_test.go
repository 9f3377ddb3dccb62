package session

import (
	"sync"
	"testing"
)

func TestStoreGetUnknownUser(t *testing.T) {
	s := NewStore()

	got := s.Get(42)
	if got.Mode != ModeNone {
		t.Fatalf("Mode = %q, want none", got.Mode)
	}
	if got.Pending != nil {
		t.Fatalf("Pending = %+v, want nil", got.Pending)
	}
	if got.DefaultCategory != "" {
		t.Fatalf("DefaultCategory = %q, want empty", got.DefaultCategory)
	}
}

func TestStoreUpdatePersists(t *testing.T) {
	s := NewStore()

	s.Update(7, func(sess *Session) {
		sess.Mode = ModeSearching
		sess.DefaultCategory = "docs"
		sess.Pending = &PendingUpload{Name: "a.pdf", Kind: KindDocument}
	})

	got := s.Get(7)
	if got.Mode != ModeSearching {
		t.Fatalf("Mode = %q, want %q", got.Mode, ModeSearching)
	}
	if got.DefaultCategory != "docs" {
		t.Fatalf("DefaultCategory = %q", got.DefaultCategory)
	}
	if got.Pending == nil || got.Pending.Name != "a.pdf" {
		t.Fatalf("Pending = %+v", got.Pending)
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.Update(7, func(sess *Session) {
		sess.Pending = &PendingUpload{Name: "a.pdf"}
	})

	snap := s.Get(7)
	snap.Pending.Name = "changed.pdf"

	if got := s.Get(7); got.Pending.Name != "a.pdf" {
		t.Fatalf("stored pending mutated through snapshot: %q", got.Pending.Name)
	}
}

func TestStoreClearModeKeepsState(t *testing.T) {
	s := NewStore()
	s.Update(7, func(sess *Session) {
		sess.Mode = ModeRenamingPath
		sess.DefaultCategory = "fotos"
		sess.Pending = &PendingUpload{Name: "x.jpg", Kind: KindPhoto}
	})

	s.ClearMode(7)

	got := s.Get(7)
	if got.Mode != ModeNone {
		t.Fatalf("Mode = %q, want none", got.Mode)
	}
	if got.DefaultCategory != "fotos" || got.Pending == nil {
		t.Fatalf("ClearMode dropped unrelated state: %+v", got)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Update(id, func(sess *Session) {
					sess.Mode = ModeSearching
				})
				_ = s.Get(id)
				s.ClearMode(id)
			}
		}(int64(i % 4))
	}
	wg.Wait()
}
