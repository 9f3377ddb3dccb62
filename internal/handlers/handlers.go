// Package handlers implements every command, callback and conversation
// flow of the file organizer bot. All user-facing text is pt-BR.
package handlers

import (
	"time"

	tg "github.com/dricdias/telegram-bot/core/telegram"
	"github.com/dricdias/telegram-bot/core/telegram/commands"
	"github.com/dricdias/telegram-bot/internal/actions"
	"github.com/dricdias/telegram-bot/internal/report"
	"github.com/dricdias/telegram-bot/internal/session"
	"github.com/dricdias/telegram-bot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// Options carries the collaborators the handlers operate on.
type Options struct {
	Sessions *session.Store
	Storage  *storage.Store
	Reporter *report.Reporter
	// TmpDir receives staged uploads before a category is chosen.
	// Defaults to the OS temp dir.
	TmpDir string
}

// Handlers binds the bot's flows to sessions, storage and reporting.
type Handlers struct {
	sessions *session.Store
	storage  *storage.Store
	reporter *report.Reporter
	tmpDir   string

	now func() time.Time
}

func New(opts Options) *Handlers {
	return &Handlers{
		sessions: opts.Sessions,
		storage:  opts.Storage,
		reporter: opts.Reporter,
		tmpDir:   opts.TmpDir,
		now:      time.Now,
	}
}

// Register wires commands, callback verbs, the plain-text fallback and
// the conversation mode handlers.
func (h *Handlers) Register(reg *tg.Registry, mgr *session.Manager) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Mensagem de boas-vindas",
	})
	reg.RegisterCommand("/menu", commands.Command{
		Handler:     h.Menu,
		Description: "Mostrar o menu principal",
	})
	reg.RegisterCommand("/categoria", commands.Command{
		Handler:     h.SetCategory,
		Description: "Definir a categoria atual",
	})
	reg.RegisterCommand("/listar", commands.Command{
		Handler:     h.ListCategory,
		Description: "Listar arquivos em uma categoria",
	})

	callbackHandlers := map[actions.Kind]tele.HandlerFunc{
		actions.KindListCategories:   h.cbListCategories,
		actions.KindOpenCategory:     h.cbOpenCategory,
		actions.KindViewFile:         h.cbViewFile,
		actions.KindShareFile:        h.cbShareFile,
		actions.KindDeleteFile:       h.cbDeleteFile,
		actions.KindDeletePrompt:     h.cbDeletePrompt,
		actions.KindSaveTo:           h.cbSaveTo,
		actions.KindNewCategory:      h.cbNewCategory,
		actions.KindRenameBeforeSave: h.cbRenameBeforeSave,
		actions.KindKeepName:         h.cbKeepName,
		actions.KindSearchPrompt:     h.cbSearchPrompt,
		actions.KindRenamePrompt:     h.cbRenamePrompt,
		actions.KindCreateNote:       h.cbCreateNote,
		actions.KindSaveNoteDefault:  h.cbSaveNoteDefault,
		actions.KindChooseNoteTitle:  h.cbChooseNoteTitle,
		actions.KindDiscardNote:      h.cbDiscardNote,
		actions.KindDashboard:        h.cbDashboard,
		actions.KindDashboardBar:     h.cbDashboardBar,
		actions.KindDashboardPie:     h.cbDashboardPie,
		actions.KindDashboardGrowth:  h.cbDashboardGrowth,
		actions.KindMainMenu:         h.cbMainMenu,
	}
	for kind, handler := range callbackHandlers {
		_ = reg.RegisterCallback(string(kind), handler)
	}

	reg.SetTextFallback(h.PlainText)

	mgr.Register(session.ModeSearching, h.modeSearching)
	mgr.Register(session.ModeRenamingPath, h.modeRenamingPath)
	mgr.Register(session.ModeDeletingPath, h.modeDeletingPath)
	mgr.Register(session.ModeRenamingBeforeSave, h.modeRenamingBeforeSave)
	mgr.Register(session.ModeCreatingNoteTitle, h.modeCreatingNoteTitle)
	mgr.Register(session.ModeCreatingNoteBody, h.modeCreatingNoteBody)
	mgr.Register(session.ModeCreatingCategory, h.modeCreatingCategory)
}

func (h *Handlers) setMode(userID int64, mode session.Mode) {
	h.sessions.Update(userID, func(s *session.Session) {
		s.Mode = mode
	})
}
