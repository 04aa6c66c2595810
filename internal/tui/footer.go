package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

type footerLink struct {
	label string
	url   string
}

type footerContact struct {
	name  string
	role  string
	phone string
}

var (
	footerContacts = []footerContact{
		{"Mtra. Teresa Genoveva Espuna Mújica", "Coordinador de Desarrollo Académico", "Ext. 2238"},
		{"Mtro. Alejandro Hernández Hernández", "Responsable de Acompañamiento Docente", "Ext. 2463"},
		{"Mtro. Jesús Magdiel Hernandez Lam", "Resp. de Supervisión y Evaluación Docente", "Ext. 2409"},
	}
	footerLinks = []footerLink{
		{"Instagram", "https://www.instagram.com/cda_iest"},
		{"Youtube", "https://www.youtube.com/channel/UCUulrQTmNuFdsTJviUBT_AA"},
		{"Portal IEST", "https://www.anahuac.mx/iest/"},
		{"SIE Docente", "https://sie.iest.edu.mx/sie/login/securelogv4.php"},
	}
)

const footerCredits = "Diseño de ♥ por docentes para docentes · Diseñado por: Alejandro Hernández Hernández · Versión CDA 4/2026 · CC BY-NC-SA"

func renderFooter(m model, width int) string {
	t := m.theme

	identity := strings.Join([]string{
		t.title.Render("Coordinación de Desarrollo Académico"),
		t.muted.Render("© 2026 IEST Anáhuac."),
		t.muted.Render("Comprometidos con la innovación educativa"),
		t.muted.Render("y la formación integral docente."),
	}, "\n")

	navLines := []string{t.helpBoxTitle.Render("Navegación")}
	for i, v := range nav.AllViews() {
		label := v.Title()
		if act, ok := gotoViewAction(i); ok {
			if combos := m.keys.Global[act]; len(combos) > 0 {
				label = fmt.Sprintf("%s %s", t.helpKey.Render(combos[0].Display()), label)
			}
		}
		navLines = append(navLines, label)
	}

	contactLines := []string{t.helpBoxTitle.Render("Contacto")}
	for _, c := range footerContacts {
		contactLines = append(contactLines,
			t.helpLabel.Render(c.name),
			t.muted.Render(c.role)+" "+t.accent.Render(c.phone),
		)
	}

	linkLines := []string{t.helpBoxTitle.Render("Síguenos & Enlaces")}
	for _, l := range footerLinks {
		linkLines = append(linkLines, l.label+" "+t.muted.Render(l.url))
	}

	columns := []string{
		identity,
		strings.Join(navLines, "\n"),
		strings.Join(contactLines, "\n"),
		strings.Join(linkLines, "\n"),
	}

	var grid string
	if width >= 120 {
		colWidth := width/len(columns) - 2
		styled := make([]string, len(columns))
		for i, col := range columns {
			styled[i] = lipgloss.NewStyle().Width(colWidth).MarginRight(2).Render(col)
		}
		grid = lipgloss.JoinHorizontal(lipgloss.Top, styled...)
	} else {
		grid = strings.Join(columns, "\n\n")
	}

	credits := t.muted.Render(truncate(footerCredits, width))
	return t.footer.Width(width).Render(grid + "\n\n" + credits)
}
