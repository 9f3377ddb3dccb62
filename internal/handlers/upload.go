package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/google/uuid"

	"github.com/dricdias/telegram-bot/core/logger"
	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"
	"github.com/dricdias/telegram-bot/internal/session"

	tele "gopkg.in/telebot.v4"
)

const uploadFailedMessage = "❌ Erro ao receber o arquivo. Por favor, tente novamente."

// OnDocument stages an uploaded document and asks about renaming.
func (h *Handlers) OnDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}
	name := doc.FileName
	if name == "" {
		name = fmt.Sprintf("arquivo_%s", h.timestamp())
	}
	return h.stageUpload(c, name, session.KindDocument, doc.MediaFile())
}

// OnPhoto stages an uploaded photo under a generated name.
func (h *Handlers) OnPhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	name := fmt.Sprintf("photo_%s.jpg", h.timestamp())
	return h.stageUpload(c, name, session.KindPhoto, photo.MediaFile())
}

// OnVideo stages an uploaded video.
func (h *Handlers) OnVideo(c tele.Context) error {
	video := c.Message().Video
	if video == nil {
		return nil
	}
	name := video.FileName
	if name == "" {
		name = fmt.Sprintf("video_%s.mp4", h.timestamp())
	}
	return h.stageUpload(c, name, session.KindVideo, video.MediaFile())
}

// OnAudio stages an uploaded audio file.
func (h *Handlers) OnAudio(c tele.Context) error {
	audio := c.Message().Audio
	if audio == nil {
		return nil
	}
	name := audio.FileName
	if name == "" {
		name = fmt.Sprintf("audio_%s.mp3", h.timestamp())
	}
	return h.stageUpload(c, name, session.KindAudio, audio.MediaFile())
}

// OnVoice stages a voice note.
func (h *Handlers) OnVoice(c tele.Context) error {
	voice := c.Message().Voice
	if voice == nil {
		return nil
	}
	name := fmt.Sprintf("voice_%s.ogg", h.timestamp())
	return h.stageUpload(c, name, session.KindVoice, voice.MediaFile())
}

func (h *Handlers) timestamp() string {
	return h.now().Format("20060102_150405")
}

// stageUpload downloads the file into the staging area, stores it as
// the pending upload and asks whether to rename before saving.
func (h *Handlers) stageUpload(c tele.Context, name string, kind session.UploadKind, file *tele.File) error {
	ctx := tghelpers.BuildContext(c)

	rc, err := c.Bot().File(file)
	if err != nil {
		logger.Warn(ctx, "tg", "upload download failed",
			slog.String("file", name),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, uploadFailedMessage)
	}
	defer rc.Close()

	dir := h.tmpDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return tghelpers.SendText(c, uploadFailedMessage)
	}

	staging := filepath.Join(dir, "upload_"+uuid.NewString())
	dst, err := os.Create(staging)
	if err != nil {
		return tghelpers.SendText(c, uploadFailedMessage)
	}
	_, copyErr := io.Copy(dst, rc)
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(staging)
		return tghelpers.SendText(c, uploadFailedMessage)
	}

	userID := c.Sender().ID
	var replaced string
	h.sessions.Update(userID, func(s *session.Session) {
		if s.Pending != nil {
			replaced = s.Pending.StagingPath
		}
		s.Pending = &session.PendingUpload{
			Name:        name,
			Kind:        kind,
			StagingPath: staging,
		}
		s.Mode = session.ModeNone
	})
	// A new upload supersedes any staged one.
	if replaced != "" {
		os.Remove(replaced)
	}

	logger.Debug(ctx, "tg", "upload staged",
		slog.String("file", name),
		slog.String("kind", string(kind)),
		slog.Int64("user_id", userID),
	)

	return tghelpers.SendText(c, fmt.Sprintf(
		"🗂️ Arquivo recebido: %s\n\n"+
			"Deseja renomear este arquivo antes de salvá-lo?", name),
		&tele.SendOptions{ReplyMarkup: renameOrContinueKeyboard()})
}
