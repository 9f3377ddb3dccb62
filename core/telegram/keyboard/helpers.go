package keyboard

import tele "gopkg.in/telebot.v4"

// RawBtn describes an inline button whose callback data is sent verbatim,
// without Telebot's unique-key encoding. The data string is limited to 64
// bytes by the Telegram API.
type RawBtn struct {
	Text string
	Data string
	URL  string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ForceReply returns a markup that forces the user to reply.
func ForceReply() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{ForceReply: true}
}

// ReplyButtons builds a reply keyboard from rows of text.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// Inline builds an inline keyboard where each provided button is placed on its own row.
func Inline(buttons ...RawBtn) *tele.ReplyMarkup {
	rows := make([][]RawBtn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []RawBtn{b})
	}
	return InlineRows(rows...)
}

// InlineRows builds an inline keyboard from rows of RawBtn.
func InlineRows(rows ...[]RawBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Data, URL: btn.URL}
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// InlineNPerRow splits a flat list of buttons into rows with up to n buttons per row.
// If n <= 1, it behaves like Inline (one per row).
func InlineNPerRow(buttons []RawBtn, n int) *tele.ReplyMarkup {
	if n <= 1 {
		return Inline(buttons...)
	}
	var rows [][]RawBtn
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return InlineRows(rows...)
}
