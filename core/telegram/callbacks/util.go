package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Raw returns the raw callback data with Telebot's optional \f prefix stripped.
// This bot uses plain action strings as callback data instead of the
// \f<unique>|<payload> encoding, so the payload must stay untouched.
func Raw(cb *tele.Callback) string {
	if cb == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
}

// RawFrom returns the raw callback data from a handler context.
func RawFrom(c tele.Context) string {
	if c == nil {
		return ""
	}
	return Raw(c.Callback())
}

// HeadTail splits raw data at the first occurrence of sep.
// Tail is empty when sep is absent.
func HeadTail(raw, sep string) (string, string) {
	idx := strings.Index(raw, sep)
	if idx < 0 {
		return raw, ""
	}
	return raw[:idx], raw[idx+len(sep):]
}
