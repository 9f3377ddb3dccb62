package router

import (
	"time"

	tg "github.com/dricdias/telegram-bot/core/telegram"
	"github.com/dricdias/telegram-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for a conversation mode manager.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for plain text routing.
// An in-progress conversation mode takes priority, then command lookup,
// then the registry text fallback.
func TextRoute(fsmMgr FSM, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// MediaRoute binds one media endpoint to a named handler with the shared wrappers.
type MediaRoute struct {
	Endpoint any
	Name     string
	Handler  tele.HandlerFunc
}

// MediaRoutes wraps media handlers (documents, photos, voice notes) with
// recover/logger middleware and summary logging.
func MediaRoutes(routes ...MediaRoute) []tg.Route {
	out := make([]tg.Route, 0, len(routes))
	for _, r := range routes {
		if r.Endpoint == nil || r.Handler == nil {
			continue
		}
		name := normalizeHandlerName(r.Name)
		h := r.Handler
		wrapped := func(c tele.Context) error {
			start := time.Now()
			return handleWithSummary(c, name, start, "", "", func() error {
				return h(c)
			})
		}
		out = append(out, tg.Route{
			Endpoint: r.Endpoint,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(wrapped)),
		})
	}
	return out
}
