package session

import (
	"context"
	"sync"

	"log/slog"

	"github.com/dricdias/telegram-bot/core/logger"
	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Manager dispatches text updates to the handler registered for the
// user's active conversation mode. It satisfies router.FSM.
//
// The mode is cleared before the handler runs. A handler that needs
// another round (next step of a flow, or a re-prompt after invalid
// input) sets the mode again through the store.
type Manager struct {
	store *Store

	mu       sync.RWMutex
	handlers map[Mode]tele.HandlerFunc
}

func NewManager(store *Store) *Manager {
	return &Manager{
		store:    store,
		handlers: make(map[Mode]tele.HandlerFunc),
	}
}

// Register binds a handler to a conversation mode. Later registrations
// for the same mode win.
func (m *Manager) Register(mode Mode, h tele.HandlerFunc) {
	if mode == ModeNone || h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[mode] = h
}

// InProgress reports whether the user has an active conversation mode.
func (m *Manager) InProgress(userID int64) bool {
	return m.store.Mode(userID) != ModeNone
}

// ManagerHandler resolves the active mode, clears it and invokes the
// registered handler.
func (m *Manager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	mode := m.store.Mode(userID)
	if mode == ModeNone {
		return nil
	}

	m.store.ClearMode(userID)

	m.mu.RLock()
	h := m.handlers[mode]
	m.mu.RUnlock()

	ctx, ok := tghelpers.ContextFrom(c)
	if !ok {
		ctx = context.Background()
	}
	if h == nil {
		logger.Warn(ctx, "fsm", "mode without handler",
			slog.String("mode", string(mode)),
			slog.Int64("user_id", userID),
		)
		return nil
	}

	logger.Debug(ctx, "fsm", "mode dispatch",
		slog.String("mode", string(mode)),
		slog.Int64("user_id", userID),
	)
	return h(c)
}
