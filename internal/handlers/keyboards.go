package handlers

import (
	"fmt"

	"github.com/dricdias/telegram-bot/core/telegram/keyboard"
	"github.com/dricdias/telegram-bot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

func mainMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "📂 Categorias", Data: "categorias"},
		keyboard.RawBtn{Text: "📊 Dashboard", Data: "dashboard"},
		keyboard.RawBtn{Text: "📝 Nova Nota", Data: "criar_nota"},
		keyboard.RawBtn{Text: "🔍 Buscar Arquivo", Data: "buscar"},
		keyboard.RawBtn{Text: "📝 Renomear Arquivo", Data: "renomear"},
		keyboard.RawBtn{Text: "❌ Excluir Arquivo", Data: "excluir"},
	)
}

func renameOrContinueKeyboard() *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "✏️ Renomear", Data: "renomear_antes_salvar"},
		keyboard.RawBtn{Text: "✅ Continuar sem renomear", Data: "continuar_sem_renomear"},
	)
}

func categoryChoiceKeyboard(current string, categories []string) *tele.ReplyMarkup {
	var buttons []keyboard.RawBtn
	if current != "" {
		buttons = append(buttons, keyboard.RawBtn{
			Text: fmt.Sprintf("📁 %s (Atual)", current),
			Data: "save_to:" + current,
		})
	}
	for _, cat := range categories {
		if cat == current {
			continue
		}
		buttons = append(buttons, keyboard.RawBtn{
			Text: "📁 " + cat,
			Data: "save_to:" + cat,
		})
	}
	buttons = append(buttons, keyboard.RawBtn{
		Text: "➕ Criar Nova Categoria",
		Data: "nova_categoria",
	})
	return keyboard.Inline(buttons...)
}

func categoriesKeyboard(categories []string) *tele.ReplyMarkup {
	var buttons []keyboard.RawBtn
	for _, cat := range categories {
		buttons = append(buttons, keyboard.RawBtn{
			Text: "📁 " + cat,
			Data: "voltar_categoria:" + cat,
		})
	}
	buttons = append(buttons,
		keyboard.RawBtn{Text: "➕ Nova Categoria", Data: "criar_categoria_menu"},
		keyboard.RawBtn{Text: "🔙 Voltar ao Menu", Data: "voltar_menu"},
	)
	return keyboard.Inline(buttons...)
}

func categoryFilesKeyboard(category string, files []string) *tele.ReplyMarkup {
	var buttons []keyboard.RawBtn
	for _, name := range files {
		buttons = append(buttons, keyboard.RawBtn{
			Text: "📄 " + name,
			Data: fmt.Sprintf("visualizar:%s/%s", category, name),
		})
	}
	buttons = append(buttons, keyboard.RawBtn{
		Text: "🔙 Voltar para Categorias",
		Data: "categorias",
	})
	return keyboard.Inline(buttons...)
}

func fileViewKeyboard(category, name string) *tele.ReplyMarkup {
	path := category + "/" + name
	return keyboard.Inline(
		keyboard.RawBtn{Text: "📤 Compartilhar", Data: "compartilhar:" + path},
		keyboard.RawBtn{Text: "🗑️ Excluir", Data: fmt.Sprintf("excluir_%s|%s", category, name)},
		keyboard.RawBtn{Text: "🔙 Voltar", Data: "voltar_categoria:" + category},
	)
}

func savedFileKeyboard(category, name string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "👁️ Visualizar Arquivo", Data: fmt.Sprintf("visualizar:%s/%s", category, name)},
		keyboard.RawBtn{Text: "📂 Ver Categoria", Data: "voltar_categoria:" + category},
		keyboard.RawBtn{Text: "🔍 Menu Principal", Data: "voltar_menu"},
	)
}

func categoryCreatedKeyboard(category string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "📂 Ver Categoria", Data: "voltar_categoria:" + category},
		keyboard.RawBtn{Text: "🔍 Menu Principal", Data: "voltar_menu"},
	)
}

func noteDraftKeyboard() *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "Salvar com título padrão", Data: "salvar_nota_padrao"},
		keyboard.RawBtn{Text: "Escolher título", Data: "escolher_titulo_nota"},
	)
}

func searchResultsKeyboard(refs []storage.FileRef) *tele.ReplyMarkup {
	var buttons []keyboard.RawBtn
	for _, ref := range refs {
		path := ref.Category + "/" + ref.Name
		buttons = append(buttons, keyboard.RawBtn{
			Text: "📄 " + path,
			Data: "visualizar:" + path,
		})
	}
	buttons = append(buttons, keyboard.RawBtn{
		Text: "🔙 Voltar ao Menu",
		Data: "voltar_menu",
	})
	return keyboard.Inline(buttons...)
}

func dashboardKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineRows(
		[]keyboard.RawBtn{
			{Text: "📊 Gráfico de Barras", Data: "dashboard_bar"},
			{Text: "🍩 Gráfico de Pizza", Data: "dashboard_pie"},
		},
		[]keyboard.RawBtn{
			{Text: "📈 Crescimento", Data: "dashboard_growth"},
			{Text: "🔄 Atualizar Stats", Data: "dashboard"},
		},
		[]keyboard.RawBtn{
			{Text: "🔙 Voltar ao Menu", Data: "voltar_menu"},
		},
	)
}

func deletedFileKeyboard(category string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "🔙 Voltar para a categoria", Data: "listar_" + category},
	)
}

func shareBackKeyboard(category, name string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.RawBtn{Text: "🔙 Voltar", Data: fmt.Sprintf("visualizar:%s/%s", category, name)},
	)
}
