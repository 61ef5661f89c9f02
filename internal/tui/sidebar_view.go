package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

const sidebarWidth = 26

// sidebarRow is one selectable line of the terminal sidebar: a section
// header, or an item of an expanded section.
type sidebarRow struct {
	section string
	item    *sidebar.ItemView
}

func sidebarRows(mv sidebar.MenuView) []sidebarRow {
	var rows []sidebarRow
	for _, sv := range mv.Sections {
		rows = append(rows, sidebarRow{section: sv.Name})
		if !sv.Expanded {
			continue
		}
		for i := range sv.Items {
			rows = append(rows, sidebarRow{section: sv.Name, item: &sv.Items[i]})
		}
	}
	return rows
}

func renderSidebar(mv sidebar.MenuView, cursor int, focused bool, height int) string {
	titles := make(map[string]sidebar.SectionView, len(mv.Sections))
	for _, sv := range mv.Sections {
		titles[sv.Name] = sv
	}

	lines := []string{titleStyle.Render(mv.Title), ""}
	for i, row := range sidebarRows(mv) {
		var line string
		if row.item == nil {
			sv := titles[row.section]
			marker := "▸"
			if sv.Expanded {
				marker = "▾"
			}
			line = sectionHeaderStyle.Render(marker + " " + sv.Title)
		} else {
			style := menuItemStyle
			if row.item.Active {
				style = activeItemStyle
			}
			line = "  " + style.Render(row.item.Label)
		}
		if focused && i == cursor {
			line = cursorStyle.Render(lipgloss.NewStyle().Width(sidebarWidth - 2).Render(ansi.Strip(line)))
		}
		lines = append(lines, line)
	}
	return sidebarStyle.Width(sidebarWidth).Height(max(height, 1)).Render(strings.Join(lines, "\n"))
}
