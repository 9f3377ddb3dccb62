package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/dricdias/telegram-bot/core/logger"
	"github.com/dricdias/telegram-bot/core/telegram/callbacks"
	"github.com/dricdias/telegram-bot/core/telegram/format"
	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"
	"github.com/dricdias/telegram-bot/internal/actions"
	"github.com/dricdias/telegram-bot/internal/report"
	"github.com/dricdias/telegram-bot/internal/session"
	"github.com/dricdias/telegram-bot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

const (
	fileNotFoundMessage = "❌ Arquivo não encontrado."
	chartNoDataMessage  = "❌ Não há dados suficientes para gerar o gráfico. Adicione arquivos às suas categorias primeiro."
)

func action(c tele.Context) actions.Action {
	return actions.Parse(callbacks.RawFrom(c))
}

func (h *Handlers) cbListCategories(c tele.Context) error {
	categories, err := h.storage.ListCategories()
	if err != nil {
		return tghelpers.EditOrSendText(c, "❌ Erro ao listar as categorias. Tente novamente.")
	}

	if len(categories) == 0 {
		return tghelpers.EditOrSendText(c,
			"📂 Nenhuma categoria disponível ainda.\n"+
				"Clique em 'Nova Categoria' para criar uma.",
			categoriesKeyboard(nil))
	}

	return tghelpers.EditOrSendText(c,
		"📂 Categorias disponíveis:\n"+
			"Clique em uma categoria para ver os arquivos:",
		categoriesKeyboard(categories))
}

func (h *Handlers) cbOpenCategory(c tele.Context) error {
	category := action(c).Category
	if category == "" {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}

	files, err := h.storage.ListFiles(category)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return tghelpers.EditOrSendText(c, "❌ Erro ao listar a categoria. Tente novamente.")
	}

	if len(files) == 0 {
		return tghelpers.EditOrSendText(c, fmt.Sprintf(
			"📂 Categoria '%s' está vazia.\n"+
				"Envie arquivos para adicionar a esta categoria.", category),
			categoryFilesKeyboard(category, nil))
	}

	return tghelpers.EditOrSendText(c, fmt.Sprintf(
		"📂 Arquivos na categoria '%s':\n"+
			"Clique em um arquivo para visualizar:", category),
		categoryFilesKeyboard(category, files))
}

func (h *Handlers) cbViewFile(c tele.Context) error {
	act := action(c)
	if act.Category == "" || act.File == "" {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}

	path, err := h.storage.Path(act.Category, act.File)
	if err != nil {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}

	h.sessions.Update(c.Sender().ID, func(s *session.Session) {
		s.ActiveFileRef = act.Category + "/" + act.File
	})

	markup := fileViewKeyboard(act.Category, act.File)
	opts := &tele.SendOptions{ReplyMarkup: markup}

	if storage.IsImage(act.File) {
		photo := &tele.Photo{
			File:    tele.FromDisk(path),
			Caption: fmt.Sprintf("📷 Imagem: %s\n📂 Categoria: %s", act.File, act.Category),
		}
		err = tghelpers.SendPhoto(c, photo, opts)
	} else {
		doc := &tele.Document{
			File:     tele.FromDisk(path),
			FileName: act.File,
			Caption:  fmt.Sprintf("📄 Documento: %s\n📂 Categoria: %s", act.File, act.Category),
		}
		err = tghelpers.SendDocument(c, doc, opts)
	}
	if err != nil {
		return tghelpers.SendText(c, "❌ Erro ao enviar o arquivo. Tente novamente.")
	}

	// The file carries its own keyboard now, the old message is noise.
	_ = c.Delete()
	return nil
}

func (h *Handlers) cbShareFile(c tele.Context) error {
	act := action(c)
	if act.Category == "" || act.File == "" {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}
	if _, err := h.storage.Path(act.Category, act.File); err != nil {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}

	shareText := fmt.Sprintf(
		"📁 Compartilhado do Organizador de Arquivos Bot\n\n"+
			"📄 Arquivo: %s\n"+
			"📂 Categoria: %s\n\n"+
			"Para acessar este arquivo, solicite ao proprietário.", act.File, act.Category)

	return tghelpers.EditOrSendText(c, fmt.Sprintf(
		"🔗 Mensagem para compartilhar:\n\n%s\n\n"+
			"Copie a mensagem acima para compartilhar as informações do arquivo.", shareText),
		shareBackKeyboard(act.Category, act.File))
}

func (h *Handlers) cbDeleteFile(c tele.Context) error {
	act := action(c)
	if act.Category == "" || act.File == "" {
		return tghelpers.EditOrSendText(c, fileNotFoundMessage)
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.storage.Delete(ctx, act.Category, act.File); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.EditOrSendText(c, fileNotFoundMessage)
		}
		return tghelpers.EditOrSendText(c, "❌ Erro ao excluir arquivo. Tente novamente.")
	}

	return tghelpers.EditOrSendMD(c, fmt.Sprintf(
		"✅ Arquivo *%s* excluído com sucesso da categoria *%s*.",
		mdSafe(act.File), mdSafe(act.Category)),
		deletedFileKeyboard(act.Category))
}

// mdSafe escapes user-chosen names interpolated into Markdown messages.
func mdSafe(s string) string {
	escaped, err := format.EscapeMarkdown(s, format.MarkdownV1)
	if err != nil {
		return s
	}
	return escaped
}

func (h *Handlers) cbDeletePrompt(c tele.Context) error {
	if err := tghelpers.EditOrSendMD(c,
		"❌ Excluir Arquivo\n\n"+
			"Digite o caminho do arquivo a ser excluído no formato:\n"+
			"`categoria/arquivo.ext`\n\n"+
			"Exemplo: `fotos/imagem.jpg`"); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeDeletingPath)
	return nil
}

func (h *Handlers) cbSaveTo(c tele.Context) error {
	category := strings.TrimSpace(action(c).Category)
	if category == "" {
		return nil
	}
	return h.commitPending(c, category, true)
}

func (h *Handlers) cbNewCategory(c tele.Context) error {
	if err := tghelpers.EditOrSendText(c,
		"➕ Criar Nova Categoria\n\n"+
			"Digite o nome da nova categoria:"); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeCreatingCategory)
	return nil
}

func (h *Handlers) cbRenameBeforeSave(c tele.Context) error {
	sess := h.sessions.Get(c.Sender().ID)
	if sess.Pending == nil {
		return tghelpers.EditOrSendText(c,
			"❌ Erro: Nenhum arquivo para renomear. Por favor, envie o arquivo novamente.")
	}

	if err := tghelpers.EditOrSendText(c, fmt.Sprintf(
		"📝 Renomear Arquivo\n\n"+
			"Nome atual: %s\n\n"+
			"Por favor, digite o novo nome para o arquivo:", sess.Pending.Name)); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeRenamingBeforeSave)
	return nil
}

func (h *Handlers) cbKeepName(c tele.Context) error {
	return h.showCategoryChoice(c, true)
}

func (h *Handlers) cbSearchPrompt(c tele.Context) error {
	if err := tghelpers.EditOrSendText(c,
		"🔍 Busca de Arquivos\n\n"+
			"Digite o nome (ou parte do nome) do arquivo que você está procurando:"); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeSearching)
	return nil
}

func (h *Handlers) cbRenamePrompt(c tele.Context) error {
	if err := tghelpers.EditOrSendMD(c,
		"📝 Renomear Arquivo\n\n"+
			"Digite no formato:\n`categoria/nome_antigo.ext -> novo_nome.ext`\n\n"+
			"Exemplo: `documentos/contrato.pdf -> contrato_2023.pdf`"); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeRenamingPath)
	return nil
}

func (h *Handlers) cbCreateNote(c tele.Context) error {
	if err := tghelpers.EditOrSendText(c,
		"📝 Criar Nova Nota\n\n"+
			"Digite o título para sua nota:"); err != nil {
		return err
	}
	h.setMode(c.Sender().ID, session.ModeCreatingNoteTitle)
	return nil
}

func (h *Handlers) cbSaveNoteDefault(c tele.Context) error {
	sess := h.sessions.Get(c.Sender().ID)
	if sess.Pending == nil {
		return tghelpers.EditOrSendText(c, "❌ Erro: nota não encontrada.")
	}
	return h.showCategoryChoice(c, true)
}

func (h *Handlers) cbChooseNoteTitle(c tele.Context) error {
	if err := tghelpers.EditOrSendText(c,
		"📝 Escolher Título da Nota\n\n"+
			"Digite um título personalizado para esta nota:"); err != nil {
		return err
	}
	// The title entered next replaces the pending note's filename, so
	// this reuses the rename-before-save step.
	h.setMode(c.Sender().ID, session.ModeRenamingBeforeSave)
	return nil
}

func (h *Handlers) cbDiscardNote(c tele.Context) error {
	userID := c.Sender().ID
	var staging string
	h.sessions.Update(userID, func(s *session.Session) {
		if s.Pending != nil {
			staging = s.Pending.StagingPath
		}
		s.Pending = nil
	})
	if staging != "" {
		os.Remove(staging)
	}
	return tghelpers.EditOrSendText(c, "✓ Mensagem ignorada.")
}

func (h *Handlers) cbDashboard(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	msg, err := h.reporter.DashboardMessage(ctx)
	if err != nil {
		return tghelpers.EditOrSendText(c, "❌ Erro ao carregar o dashboard. Tente novamente.")
	}
	return tghelpers.EditOrSendMD(c, msg, dashboardKeyboard())
}

func (h *Handlers) cbDashboardBar(c tele.Context) error {
	return h.sendChart(c, h.reporter.BarChart,
		"📊 *Gráfico de Barras - Arquivos por Categoria*\n\nUse /menu para voltar.",
		"❌ Erro ao gerar o gráfico de barras.")
}

func (h *Handlers) cbDashboardPie(c tele.Context) error {
	return h.sendChart(c, h.reporter.PieChart,
		"🍩 *Gráfico de Pizza - Distribuição de Arquivos por Categoria*\n\nUse /menu para voltar.",
		"❌ Erro ao gerar o gráfico de pizza.")
}

func (h *Handlers) cbDashboardGrowth(c tele.Context) error {
	return h.sendChart(c, h.reporter.GrowthChart,
		"📈 *Gráfico de Crescimento - Evolução de Arquivos por Categoria*\n\nUse /menu para voltar.",
		"❌ Erro ao gerar o gráfico de crescimento.")
}

func (h *Handlers) sendChart(c tele.Context, render func(context.Context) ([]byte, error), caption, failMessage string) error {
	ctx := tghelpers.BuildContext(c)

	data, err := render(ctx)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return tghelpers.SendText(c, chartNoDataMessage)
		}
		logger.Warn(ctx, "report", "chart render failed",
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, failMessage)
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(data)),
		Caption: caption,
	}
	if err := tghelpers.SendPhoto(c, photo, &tele.SendOptions{ParseMode: tele.ModeMarkdown}); err != nil {
		return tghelpers.SendText(c, failMessage)
	}

	_ = c.Delete()
	return nil
}

func (h *Handlers) cbMainMenu(c tele.Context) error {
	return tghelpers.EditOrSendText(c, mainMenuMessage, mainMenuKeyboard())
}

// showCategoryChoice presents the category keyboard for the pending
// upload, with the sticky category first.
func (h *Handlers) showCategoryChoice(c tele.Context, viaCallback bool) error {
	sess := h.sessions.Get(c.Sender().ID)

	name := "arquivo"
	if sess.Pending != nil {
		name = sess.Pending.Name
	}
	categories, err := h.storage.ListCategories()
	if err != nil {
		categories = nil
	}

	text := fmt.Sprintf(
		"📄 Arquivo: %s\n\n"+
			"📂 Escolha uma categoria para salvar ou crie uma nova:", name)
	markup := categoryChoiceKeyboard(sess.DefaultCategory, categories)

	if viaCallback {
		return tghelpers.EditOrSendText(c, text, markup)
	}
	return tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: markup})
}

// commitPending writes the staged upload into the chosen category. The
// pending slot is cleared whether the save works or not.
func (h *Handlers) commitPending(c tele.Context, category string, viaCallback bool) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	sess := h.sessions.Get(userID)
	pending := sess.Pending
	if pending == nil {
		return nil
	}

	defer h.sessions.Update(userID, func(s *session.Session) {
		s.Pending = nil
	})

	var (
		finalName string
		err       error
	)
	if pending.Kind == session.KindNote {
		finalName, err = h.storage.Save(ctx, category, pending.Name,
			strings.NewReader(pending.NoteBody), string(session.KindNote))
	} else {
		finalName, err = h.storage.SaveFile(ctx, category, pending.Name,
			pending.StagingPath, string(pending.Kind))
	}
	if err != nil {
		if pending.StagingPath != "" {
			os.Remove(pending.StagingPath)
		}
		logger.Warn(ctx, "tg", "pending save failed",
			slog.String("category", category),
			slog.String("file", pending.Name),
			slog.String("err", err.Error()),
		)
		msg := "❌ Erro ao salvar o arquivo. Por favor, tente novamente."
		if viaCallback {
			return tghelpers.EditOrSendText(c, msg)
		}
		return tghelpers.SendText(c, msg)
	}

	h.sessions.Update(userID, func(s *session.Session) {
		s.DefaultCategory = category
	})

	success := "✅ Arquivo salvo com sucesso!"
	if pending.Kind == session.KindNote {
		success = "✅ Nota salva com sucesso!"
	}
	msg := fmt.Sprintf("%s\n📂 Categoria: %s\n📄 Nome: %s", success, category, finalName)
	markup := savedFileKeyboard(category, finalName)

	if viaCallback {
		return tghelpers.EditOrSendText(c, msg, markup)
	}
	return tghelpers.SendText(c, msg, &tele.SendOptions{ReplyMarkup: markup})
}
