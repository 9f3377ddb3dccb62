package actions

import "testing"

func TestParseExactVerbs(t *testing.T) {
	cases := map[string]Kind{
		"categorias":             KindListCategories,
		"excluir":                KindDeletePrompt,
		"buscar":                 KindSearchPrompt,
		"renomear":               KindRenamePrompt,
		"criar_nota":             KindCreateNote,
		"salvar_nota_padrao":     KindSaveNoteDefault,
		"escolher_titulo_nota":   KindChooseNoteTitle,
		"ignorar_texto":          KindDiscardNote,
		"renomear_antes_salvar":  KindRenameBeforeSave,
		"continuar_sem_renomear": KindKeepName,
		"voltar_menu":            KindMainMenu,
	}
	for raw, want := range cases {
		if got := Parse(raw); got.Kind != want {
			t.Errorf("Parse(%q).Kind = %q, want %q", raw, got.Kind, want)
		}
	}
}

func TestParseNewCategoryAliases(t *testing.T) {
	for _, raw := range []string{"nova_categoria", "criar_categoria_menu"} {
		if got := Parse(raw); got.Kind != KindNewCategory {
			t.Errorf("Parse(%q).Kind = %q, want %q", raw, got.Kind, KindNewCategory)
		}
	}
}

func TestParseColonArguments(t *testing.T) {
	got := Parse("save_to:documentos")
	if got.Kind != KindSaveTo || got.Category != "documentos" {
		t.Fatalf("save_to parsed as %+v", got)
	}

	got = Parse("voltar_categoria:fotos")
	if got.Kind != KindOpenCategory || got.Category != "fotos" {
		t.Fatalf("voltar_categoria parsed as %+v", got)
	}

	got = Parse("visualizar:docs/relatorio.pdf")
	if got.Kind != KindViewFile || got.Category != "docs" || got.File != "relatorio.pdf" {
		t.Fatalf("visualizar parsed as %+v", got)
	}

	got = Parse("compartilhar:docs/nota_20240101_120000.txt")
	if got.Kind != KindShareFile || got.Category != "docs" || got.File != "nota_20240101_120000.txt" {
		t.Fatalf("compartilhar parsed as %+v", got)
	}
}

func TestParseDeleteShadowing(t *testing.T) {
	// "excluir_<c>|<f>" must never fall into the bare "excluir" prompt.
	got := Parse("excluir_docs|a.pdf")
	if got.Kind != KindDeleteFile {
		t.Fatalf("Kind = %q, want %q", got.Kind, KindDeleteFile)
	}
	if got.Category != "docs" || got.File != "a.pdf" {
		t.Fatalf("args = %q/%q", got.Category, got.File)
	}

	if got := Parse("excluir"); got.Kind != KindDeletePrompt {
		t.Fatalf("bare excluir parsed as %q", got.Kind)
	}
}

func TestParseDashboardShadowing(t *testing.T) {
	cases := map[string]Kind{
		"dashboard":        KindDashboard,
		"dashboard_bar":    KindDashboardBar,
		"dashboard_pie":    KindDashboardPie,
		"dashboard_growth": KindDashboardGrowth,
	}
	for raw, want := range cases {
		if got := Parse(raw); got.Kind != want {
			t.Errorf("Parse(%q).Kind = %q, want %q", raw, got.Kind, want)
		}
	}
}

func TestParseListAlias(t *testing.T) {
	got := Parse("listar_recibos")
	if got.Kind != KindOpenCategory || got.Category != "recibos" {
		t.Fatalf("listar_ parsed as %+v", got)
	}
}

func TestParseUnknown(t *testing.T) {
	for _, raw := range []string{"", "   ", "algo_estranho", "dashboard_x:1"} {
		if got := Parse(raw); got.Kind != KindUnknown {
			t.Errorf("Parse(%q).Kind = %q, want unknown", raw, got.Kind)
		}
	}
}

func TestKeyFeedsRegistry(t *testing.T) {
	if got := Key("excluir_docs|a.pdf"); got != string(KindDeleteFile) {
		t.Fatalf("Key = %q", got)
	}
	if got := Key("nao_existe"); got != "" {
		t.Fatalf("Key for unknown = %q, want empty", got)
	}
}
