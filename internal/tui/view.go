package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/villainapp/internal/comment"
)

// View renders the panel.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Comentarios · " + m.villain))
	b.WriteString("\n")

	if msg := m.panel.Err(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Agregar comentario"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Nombre de usuario"))
	b.WriteString("\n")
	b.WriteString(m.newAuthor.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Comentario"))
	b.WriteString("\n")
	b.WriteString(m.newBody.View())
	b.WriteString("\n")

	if m.panel.IsSubmitting() {
		b.WriteString(disabledButtonStyle.Render(m.spinner.View() + " Publicando..."))
	} else {
		b.WriteString(buttonStyle.Render("Publicar comentario"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderList() string {
	var b strings.Builder

	heading := m.panel.CountLabel()
	if m.panel.IsLoading() {
		heading = m.spinner.View() + " " + heading
	}
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n")

	width := max(m.width-4, 20)
	for i, c := range m.panel.Comments() {
		if m.panel.IsEditing(c.ID) {
			b.WriteString(editCardStyle.Width(width).Render(m.renderEditor()))
		} else {
			style := cardStyle
			if m.focus == focusList && i == m.cursor {
				style = selectedCardStyle
			}
			b.WriteString(style.Width(width).Render(m.renderComment(c)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderComment(c *comment.Comment) string {
	header := authorStyle.Render(c.Author) + "  " + dateStyle.Render(comment.FormatDate(c.CreatedAt, m.loc))
	if c.Edited {
		header += " " + editedStyle.Render("(editado)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, c.Body)
}

func (m *Model) renderEditor() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Nombre de usuario"),
		m.editAuthor.View(),
		labelStyle.Render("Comentario"),
		m.editBody.View(),
	)
}

func (m *Model) helpLine() string {
	switch m.focus {
	case focusNewAuthor, focusNewBody:
		return "tab: cambiar campo · ctrl+s: publicar · esc: volver"
	case focusEditAuthor, focusEditBody:
		return "tab: cambiar campo · ctrl+s: guardar · esc: cancelar"
	}
	return "↑/↓: mover · n: nuevo · e: editar · d: eliminar · r: recargar · q: salir"
}
