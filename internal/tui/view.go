package tui

import (
	"fmt"
	"strings"
)

const (
	emptyListMessage = "No items in the shopping list"
	loadingMessage   = "Loading items..."
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shopping List"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render(loadingMessage))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(mutedStyle.Render(emptyListMessage))
		b.WriteString("\n")
	default:
		for i, item := range m.items {
			box := boxUnchecked
			name := item.Name
			if item.Purchased {
				box = successStyle.Render(boxChecked)
				name = doneStyle.Render(name)
			}
			line := fmt.Sprintf("%s %s %s", box, name, mutedStyle.Render(fmt.Sprintf("× %d", item.Quantity)))
			prefix := "  "
			if i == m.cursor && m.mode == modeBrowse {
				prefix = selectedStyle.Render("> ")
			}
			b.WriteString(prefix + line + "\n")
		}
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.formErr != "" {
			title += "  " + errorStyle.Render(m.formErr)
		}
		form := title + "\n" +
			"Name:     " + m.nameInput.View() + "\n" +
			"Quantity: " + m.qtyInput.View()
		b.WriteString("\n" + formBoxStyle.Render(form) + "\n")
		b.WriteString(helpStyle.Render("enter save • tab switch field • esc cancel"))
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("a add • e edit • d delete • space toggle • r refresh • q quit"))
	}
	b.WriteString("\n")

	return b.String()
}
