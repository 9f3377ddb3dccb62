package handlers

import (
	"errors"
	"fmt"
	"strings"

	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"
	"github.com/dricdias/telegram-bot/internal/session"
	"github.com/dricdias/telegram-bot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

const welcomeMessage = "👋 Bem-vindo ao Organizador de Arquivos Bot!\n\n" +
	"Este bot ajuda você a organizar seus arquivos em categorias.\n\n" +
	"Comandos disponíveis:\n" +
	"• /menu - Mostrar o menu principal\n" +
	"• /categoria <nome> - Definir a categoria atual\n" +
	"• /listar <categoria> - Listar arquivos em uma categoria\n\n" +
	"Você também pode enviar arquivos ou fotos diretamente para salvá-los."

const mainMenuMessage = "🔍 Menu Principal - Escolha uma opção:"

// Start greets the user and lists the available commands.
func (h *Handlers) Start(c tele.Context) error {
	return tghelpers.SendText(c, welcomeMessage)
}

// Menu shows the main menu with the interactive options.
func (h *Handlers) Menu(c tele.Context) error {
	return tghelpers.SendText(c, mainMenuMessage, &tele.SendOptions{
		ReplyMarkup: mainMenuKeyboard(),
	})
}

// SetCategory defines the sticky category used for future uploads,
// creating it when missing.
func (h *Handlers) SetCategory(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return tghelpers.SendText(c,
			"❌ Uso incorreto. Use: /categoria <nome>\n"+
				"Exemplo: /categoria documentos")
	}

	if _, err := h.storage.EnsureCategory(name); err != nil {
		return tghelpers.SendText(c, "❌ Não foi possível criar a categoria. Tente outro nome.")
	}

	h.sessions.Update(c.Sender().ID, func(s *session.Session) {
		s.DefaultCategory = name
	})

	return tghelpers.SendText(c, fmt.Sprintf(
		"✅ Categoria atual definida: 📁 %s\n"+
			"Todos os arquivos enviados serão salvos nesta categoria.", name))
}

// ListCategory lists the files stored in one category.
func (h *Handlers) ListCategory(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return tghelpers.SendText(c,
			"❌ Uso incorreto. Use: /listar <categoria>\n"+
				"Exemplo: /listar documentos")
	}

	files, err := h.storage.ListFiles(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, fmt.Sprintf(
				"❌ Categoria '%s' não encontrada.\n"+
					"Use /categoria %s para criar esta categoria.", name, name))
		}
		return tghelpers.SendText(c, "❌ Erro ao listar a categoria. Tente novamente.")
	}

	if len(files) == 0 {
		return tghelpers.SendText(c, fmt.Sprintf(
			"📂 Categoria '%s' está vazia.\n"+
				"Envie arquivos depois de usar /categoria %s", name, name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📂 Arquivos na categoria '%s':\n\n", name)
	for i, file := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("📄 " + file)
	}
	return tghelpers.SendText(c, b.String())
}
