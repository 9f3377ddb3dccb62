package handlers

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"
	"github.com/dricdias/telegram-bot/internal/session"
	"github.com/dricdias/telegram-bot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// PlainText handles free text with no active conversation mode. Longer
// texts are treated as an implicit note draft.
func (h *Handlers) PlainText(c tele.Context) error {
	text := c.Text()

	if utf8.RuneCountInString(text) <= 3 {
		return tghelpers.SendText(c, "Use /menu para acessar as opções do bot.")
	}

	h.sessions.Update(c.Sender().ID, func(s *session.Session) {
		s.Pending = &session.PendingUpload{
			Name:     fmt.Sprintf("nota_%s.txt", h.timestamp()),
			Kind:     session.KindNote,
			NoteBody: text,
		}
	})

	return tghelpers.SendMD(c,
		"📝 *Nota de Texto Detectada*\n\n"+
			"Deseja escolher um título personalizado ou salvar com título padrão?",
		noteDraftKeyboard())
}

// modeRenamingBeforeSave takes the new name for the pending upload and
// moves on to the category choice. The original extension is kept when
// the new name has none.
func (h *Handlers) modeRenamingBeforeSave(c tele.Context) error {
	userID := c.Sender().ID
	newName := strings.TrimSpace(c.Text())

	if newName == "" {
		h.setMode(userID, session.ModeRenamingBeforeSave)
		return tghelpers.SendText(c, "❌ Por favor, forneça um nome válido para o arquivo.")
	}

	var hadPending bool
	h.sessions.Update(userID, func(s *session.Session) {
		if s.Pending == nil {
			return
		}
		hadPending = true
		if ext := extensionOf(s.Pending.Name); ext != "" && !strings.Contains(newName, ".") {
			newName += "." + ext
		}
		s.Pending.Name = newName
	})

	if !hadPending {
		return tghelpers.SendText(c,
			"❌ Erro: Nenhum arquivo para renomear. Por favor, envie o arquivo novamente.")
	}
	return h.showCategoryChoice(c, false)
}

// modeCreatingNoteTitle stores the note title and asks for the body.
func (h *Handlers) modeCreatingNoteTitle(c tele.Context) error {
	userID := c.Sender().ID
	title := strings.TrimSpace(c.Text())

	if title == "" {
		h.setMode(userID, session.ModeCreatingNoteTitle)
		return tghelpers.SendText(c, "❌ Por favor, forneça um título válido para a nota.")
	}

	h.sessions.Update(userID, func(s *session.Session) {
		s.NoteTitle = title
		s.Mode = session.ModeCreatingNoteBody
	})

	return tghelpers.SendText(c, fmt.Sprintf(
		"📝 Título da nota: %s\n\n"+
			"Agora, por favor, digite o conteúdo da sua nota:", title))
}

// modeCreatingNoteBody builds the pending note and moves to the
// category choice.
func (h *Handlers) modeCreatingNoteBody(c tele.Context) error {
	userID := c.Sender().ID
	body := c.Text()

	if strings.TrimSpace(body) == "" {
		h.setMode(userID, session.ModeCreatingNoteBody)
		return tghelpers.SendText(c, "❌ Por favor, forneça algum conteúdo para a nota.")
	}

	h.sessions.Update(userID, func(s *session.Session) {
		title := s.NoteTitle
		if title == "" {
			title = "Nota sem título"
		}
		s.Pending = &session.PendingUpload{
			Name:     storage.NoteFilename(title, h.now()),
			Kind:     session.KindNote,
			NoteBody: body,
		}
		s.NoteTitle = ""
	})

	return h.showCategoryChoice(c, false)
}

// modeCreatingCategory creates the named category. A pending upload is
// committed straight into it.
func (h *Handlers) modeCreatingCategory(c tele.Context) error {
	userID := c.Sender().ID
	name := strings.TrimSpace(c.Text())

	if name == "" {
		h.setMode(userID, session.ModeCreatingCategory)
		return tghelpers.SendText(c, "❌ Por favor, forneça um nome válido para a categoria.")
	}

	if h.sessions.Get(userID).Pending != nil {
		return h.commitPending(c, name, false)
	}

	if _, err := h.storage.EnsureCategory(name); err != nil {
		return tghelpers.SendText(c, "❌ Não foi possível criar a categoria. Tente outro nome.")
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.DefaultCategory = name
	})

	return tghelpers.SendText(c, fmt.Sprintf(
		"✅ Categoria '%s' criada com sucesso!\n"+
			"Esta agora é sua categoria padrão para upload de arquivos.", name),
		&tele.SendOptions{ReplyMarkup: categoryCreatedKeyboard(name)})
}

// modeSearching runs the case-insensitive search and lists hits as
// view buttons.
func (h *Handlers) modeSearching(c tele.Context) error {
	userID := c.Sender().ID
	term := strings.ToLower(strings.TrimSpace(c.Text()))

	if utf8.RuneCountInString(term) < 3 {
		h.setMode(userID, session.ModeSearching)
		return tghelpers.SendText(c, "🔍 Por favor, digite pelo menos 3 caracteres para a busca.")
	}

	hits, err := h.storage.Search(term)
	if err != nil {
		return tghelpers.SendText(c, "❌ Erro durante a busca. Tente novamente.")
	}

	if len(hits) == 0 {
		return tghelpers.SendText(c, fmt.Sprintf("🔍 Nenhum arquivo encontrado para '%s'.", term))
	}

	return tghelpers.SendText(c, fmt.Sprintf(
		"🔍 Resultado da busca por '%s':\n"+
			"Clique em um arquivo para visualizar:", term),
		&tele.SendOptions{ReplyMarkup: searchResultsKeyboard(hits)})
}

// modeRenamingPath parses "categoria/antigo -> novo" and renames.
func (h *Handlers) modeRenamingPath(c tele.Context) error {
	input := strings.TrimSpace(c.Text())

	left, newName, found := strings.Cut(input, "->")
	if !found {
		return tghelpers.SendText(c,
			"❌ Formato inválido. Use: categoria/nome_antigo.ext -> novo_nome.ext")
	}

	category, oldName, found := strings.Cut(strings.TrimSpace(left), "/")
	if !found {
		return tghelpers.SendText(c,
			"❌ Formato inválido. Especifique a categoria: categoria/nome_antigo.ext")
	}
	newName = strings.TrimSpace(newName)

	err := h.storage.Rename(category, oldName, newName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return tghelpers.SendText(c, "❌ Arquivo não encontrado. Verifique o nome e a categoria.")
	case errors.Is(err, storage.ErrExists):
		return tghelpers.SendText(c, "❌ Já existe um arquivo com este nome na categoria.")
	case err != nil:
		return tghelpers.SendText(c, "❌ Erro ao renomear o arquivo. Tente novamente.")
	}

	return tghelpers.SendText(c, fmt.Sprintf(
		"✅ Arquivo renomeado com sucesso!\n"+
			"📂 Categoria: %s\n"+
			"📄 De: %s\n"+
			"📄 Para: %s", category, oldName, newName))
}

// modeDeletingPath parses "categoria/arquivo" and deletes.
func (h *Handlers) modeDeletingPath(c tele.Context) error {
	input := strings.TrimSpace(c.Text())

	category, name, found := strings.Cut(input, "/")
	if !found {
		return tghelpers.SendText(c, "❌ Formato inválido. Use: categoria/arquivo.ext")
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.storage.Delete(ctx, category, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "❌ Arquivo não encontrado. Verifique o nome e a categoria.")
		}
		return tghelpers.SendText(c, "❌ Erro ao excluir o arquivo. Tente novamente.")
	}

	return tghelpers.SendText(c, fmt.Sprintf(
		"✅ Arquivo excluído com sucesso!\n"+
			"📂 Categoria: %s\n"+
			"📄 Arquivo: %s", category, name))
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}
