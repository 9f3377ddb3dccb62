// Package session keeps per-user conversation state in memory.
//
// Every multi-step flow of the bot (busca, renomear, excluir, notas,
// categorias) is driven by a Mode stored here. The Manager routes plain
// text updates to the handler registered for the active mode.
package session

// Mode identifies the conversation step a user is currently in.
// The zero value means no conversation is in progress.
type Mode string

const (
	ModeNone Mode = ""

	// ModeSearching waits for a search term.
	ModeSearching Mode = "buscando"
	// ModeRenamingPath waits for "categoria/antigo -> novo".
	ModeRenamingPath Mode = "renomeando"
	// ModeDeletingPath waits for "categoria/arquivo".
	ModeDeletingPath Mode = "excluindo"
	// ModeRenamingBeforeSave waits for the new name of a pending upload.
	ModeRenamingBeforeSave Mode = "renomeando_antes_de_salvar"
	// ModeCreatingNoteTitle waits for the title of a new note.
	ModeCreatingNoteTitle Mode = "criando_nota_titulo"
	// ModeCreatingNoteBody waits for the body of a new note.
	ModeCreatingNoteBody Mode = "criando_nota_conteudo"
	// ModeCreatingCategory waits for the name of a new category.
	ModeCreatingCategory Mode = "criando_categoria"
)

// UploadKind distinguishes how a pending file reached the bot.
type UploadKind string

const (
	KindDocument UploadKind = "document"
	KindPhoto    UploadKind = "photo"
	KindVideo    UploadKind = "video"
	KindAudio    UploadKind = "audio"
	KindVoice    UploadKind = "voice"
	KindNote     UploadKind = "note"
)

// PendingUpload is a file waiting for a category choice. The payload is
// either staged on disk (media downloads) or held inline (notes).
type PendingUpload struct {
	// Name is the filename the file will be saved under.
	Name string
	Kind UploadKind
	// StagingPath points at the temp download for media uploads.
	StagingPath string
	// NoteBody carries the text content for note uploads.
	NoteBody string
}

// Session is the full per-user state. Copies are handed out by the
// Store; mutation goes through Store.Update.
type Session struct {
	// DefaultCategory is remembered from the last save and offered
	// first on the next one.
	DefaultCategory string

	Mode    Mode
	Pending *PendingUpload

	// NoteTitle holds the title collected between the title and body
	// steps of note creation.
	NoteTitle string

	// ActiveFileRef points at the "categoria/arquivo" a rename or
	// delete prompt referred to, so the follow-up text can be checked
	// against it.
	ActiveFileRef string
}
