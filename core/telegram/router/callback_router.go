package router

import (
	"time"

	tg "github.com/dricdias/telegram-bot/core/telegram"
	"github.com/dricdias/telegram-bot/core/telegram/callbacks"
	"github.com/dricdias/telegram-bot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises parsing and fallback behaviour for callbacks.
type CallbackOptions struct {
	// Parse resolves the raw callback data into a registry key.
	// When nil, the data up to the first ':' is used as the key.
	Parse    func(raw string) (key string)
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Callback data is treated as a raw action string; the key resolved by Parse
// selects the handler and the handler itself re-reads the full payload.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	parse := opts.Parse
	if parse == nil {
		parse = func(raw string) string {
			key, _ := callbacks.HeadTail(raw, ":")
			return key
		}
	}

	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		raw := callbacks.RawFrom(c)
		key := parse(raw)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
