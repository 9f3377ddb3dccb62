// Package actions parses raw callback payloads into typed actions.
//
// Payloads travel in three shapes: a bare verb ("buscar"), a verb with
// a ':' argument ("save_to:docs") and legacy underscore forms
// ("excluir_docs|a.pdf", "listar_docs"). Parsing happens once at the
// router boundary; handlers receive the resolved kind as the registry
// key and re-read arguments with Parse.
package actions

import "strings"

// Kind is the canonical name of an action. It doubles as the callback
// registry key.
type Kind string

const (
	KindUnknown Kind = ""

	KindListCategories Kind = "categorias"
	KindOpenCategory   Kind = "voltar_categoria"
	KindViewFile       Kind = "visualizar"
	KindShareFile      Kind = "compartilhar"
	KindDeleteFile     Kind = "excluir_arquivo"
	KindDeletePrompt   Kind = "excluir"
	KindSaveTo         Kind = "save_to"
	KindNewCategory    Kind = "nova_categoria"

	KindRenameBeforeSave Kind = "renomear_antes_salvar"
	KindKeepName         Kind = "continuar_sem_renomear"

	KindSearchPrompt Kind = "buscar"
	KindRenamePrompt Kind = "renomear"

	KindCreateNote      Kind = "criar_nota"
	KindSaveNoteDefault Kind = "salvar_nota_padrao"
	KindChooseNoteTitle Kind = "escolher_titulo_nota"
	KindDiscardNote     Kind = "ignorar_texto"

	KindDashboard       Kind = "dashboard"
	KindDashboardBar    Kind = "dashboard_bar"
	KindDashboardPie    Kind = "dashboard_pie"
	KindDashboardGrowth Kind = "dashboard_growth"

	KindMainMenu Kind = "voltar_menu"
)

// Action is a parsed callback payload.
type Action struct {
	Kind     Kind
	Category string
	File     string
}

// exactVerbs resolve on full-string match. Longer dashboard variants
// live here too, so they never collapse into the plain dashboard verb.
var exactVerbs = map[string]Kind{
	"categorias":             KindListCategories,
	"excluir":                KindDeletePrompt,
	"nova_categoria":         KindNewCategory,
	"criar_categoria_menu":   KindNewCategory,
	"renomear_antes_salvar":  KindRenameBeforeSave,
	"continuar_sem_renomear": KindKeepName,
	"buscar":                 KindSearchPrompt,
	"renomear":               KindRenamePrompt,
	"criar_nota":             KindCreateNote,
	"salvar_nota_padrao":     KindSaveNoteDefault,
	"escolher_titulo_nota":   KindChooseNoteTitle,
	"ignorar_texto":          KindDiscardNote,
	"dashboard":              KindDashboard,
	"dashboard_bar":          KindDashboardBar,
	"dashboard_pie":          KindDashboardPie,
	"dashboard_growth":       KindDashboardGrowth,
	"voltar_menu":            KindMainMenu,
}

// colonVerbs resolve on "verb:argument" payloads.
var colonVerbs = map[string]Kind{
	"voltar_categoria": KindOpenCategory,
	"visualizar":       KindViewFile,
	"compartilhar":     KindShareFile,
	"save_to":          KindSaveTo,
}

// Parse resolves a raw callback payload. Unknown payloads return an
// Action with KindUnknown.
func Parse(raw string) Action {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Action{}
	}

	if kind, ok := exactVerbs[raw]; ok {
		return Action{Kind: kind}
	}

	if verb, arg, found := strings.Cut(raw, ":"); found {
		if kind, ok := colonVerbs[verb]; ok {
			return buildAction(kind, arg)
		}
	}

	// Underscore forms carry the argument inside the verb, so prefixes
	// are tried from most to least specific.
	if arg, ok := strings.CutPrefix(raw, "excluir_"); ok {
		category, file, _ := strings.Cut(arg, "|")
		return Action{Kind: KindDeleteFile, Category: category, File: file}
	}
	if arg, ok := strings.CutPrefix(raw, "listar_"); ok {
		return Action{Kind: KindOpenCategory, Category: arg}
	}

	return Action{}
}

func buildAction(kind Kind, arg string) Action {
	switch kind {
	case KindViewFile, KindShareFile:
		category, file, _ := strings.Cut(arg, "/")
		return Action{Kind: kind, Category: category, File: file}
	default:
		return Action{Kind: kind, Category: arg}
	}
}

// Key resolves the registry key for a raw payload. An empty key routes
// to the registry's not-found handler.
func Key(raw string) string {
	return string(Parse(raw).Kind)
}
