package session

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements just enough of tele.Context for dispatch tests.
type stubContext struct {
	tele.Context
	sender *tele.User
	values map[string]any
}

func newStubContext(userID int64) *stubContext {
	return &stubContext{
		sender: &tele.User{ID: userID},
		values: make(map[string]any),
	}
}

func (s *stubContext) Sender() *tele.User { return s.sender }

func (s *stubContext) Get(key string) any { return s.values[key] }

func (s *stubContext) Set(key string, val any) { s.values[key] = val }

func TestManagerInProgress(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store)

	if mgr.InProgress(1) {
		t.Fatal("fresh user reported in progress")
	}

	store.Update(1, func(sess *Session) { sess.Mode = ModeSearching })
	if !mgr.InProgress(1) {
		t.Fatal("user with active mode not reported in progress")
	}
}

func TestManagerClearsModeBeforeHandler(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store)

	var seen Mode
	mgr.Register(ModeSearching, func(c tele.Context) error {
		seen = store.Mode(c.Sender().ID)
		return nil
	})

	store.Update(9, func(sess *Session) { sess.Mode = ModeSearching })
	if err := mgr.ManagerHandler(newStubContext(9)); err != nil {
		t.Fatalf("ManagerHandler: %v", err)
	}

	if seen != ModeNone {
		t.Fatalf("handler observed mode %q, want cleared", seen)
	}
	if store.Mode(9) != ModeNone {
		t.Fatalf("mode not cleared after dispatch: %q", store.Mode(9))
	}
}

func TestManagerHandlerMayRearmMode(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store)

	mgr.Register(ModeCreatingNoteTitle, func(c tele.Context) error {
		store.Update(c.Sender().ID, func(sess *Session) {
			sess.Mode = ModeCreatingNoteBody
		})
		return nil
	})

	store.Update(3, func(sess *Session) { sess.Mode = ModeCreatingNoteTitle })
	if err := mgr.ManagerHandler(newStubContext(3)); err != nil {
		t.Fatalf("ManagerHandler: %v", err)
	}

	if got := store.Mode(3); got != ModeCreatingNoteBody {
		t.Fatalf("mode = %q, want %q", got, ModeCreatingNoteBody)
	}
}

func TestManagerUnregisteredModeClears(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store)

	store.Update(5, func(sess *Session) { sess.Mode = ModeDeletingPath })
	if err := mgr.ManagerHandler(newStubContext(5)); err != nil {
		t.Fatalf("ManagerHandler: %v", err)
	}
	if store.Mode(5) != ModeNone {
		t.Fatal("mode not cleared for unregistered handler")
	}
}
