// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the interactive app browser: a list of installed
// apps with a scrollable manual view. It is read-only; installs and renders
// stay on the command line.
package tui

import (
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yjcyxky/biominer-app-util/internal/appdir"
	"github.com/yjcyxky/biominer-app-util/internal/i18n"
)

type screen int

const (
	screenList screen = iota
	screenManual
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
)

type appItem struct {
	name string
	path string
}

func (a appItem) Title() string       { return a.name }
func (a appItem) Description() string { return a.path }
func (a appItem) FilterValue() string { return a.name }

type model struct {
	scr    screen
	apps   list.Model
	manual viewport.Model
	active string
	status string
	width  int
	height int
}

// Run starts the interactive browser over the apps installed under appRoot.
func Run(appRoot string) {
	m, err := newModel(appRoot)
	if err != nil {
		os.Stderr.WriteString("tui error: " + err.Error() + "\n")
		os.Exit(1)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		os.Stderr.WriteString("tui error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newModel(appRoot string) (model, error) {
	apps, err := appdir.List(appRoot)
	if err != nil {
		return model{}, err
	}

	items := make([]list.Item, 0, len(apps))
	for _, app := range apps {
		items = append(items, appItem{name: app.Name, path: app.Path})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = i18n.T("tui.title")
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		scr:    screenList,
		apps:   l,
		manual: viewport.New(20, 5),
	}, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.apps.SetSize(msg.Width-h, msg.Height-v-2)
		m.manual.Width = msg.Width - h
		m.manual.Height = msg.Height - v - 4
		return m, nil

	case tea.KeyMsg:
		// Keep list filtering keys working while typing a filter.
		if m.scr == screenList && m.apps.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q", "esc":
			if m.scr == screenManual {
				m.scr = screenList
				m.active = ""
				m.status = ""
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.scr == screenList {
				it, ok := m.apps.SelectedItem().(appItem)
				if !ok {
					return m, nil
				}
				m.active = it.name
				m.manual.SetContent(manualContent(it.path))
				m.manual.GotoTop()
				m.scr = screenManual
				return m, nil
			}

		case "c":
			if it, ok := m.apps.SelectedItem().(appItem); ok {
				if err := clipboard.WriteAll(it.path); err == nil {
					m.status = i18n.T("tui.copied")
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenManual:
		m.manual, cmd = m.manual.Update(msg)
	default:
		m.apps, cmd = m.apps.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	switch m.scr {
	case screenManual:
		header := titleStyle.Render(m.active)
		return docStyle.Render(header + "\n" + m.manual.View() + "\n" + helpStyle.Render(i18n.T("tui.help")))
	default:
		view := docStyle.Render(m.apps.View())
		footer := helpStyle.Render(i18n.T("tui.help"))
		if m.status != "" {
			footer = statusStyle.Render(m.status) + "  " + footer
		}
		return view + "\n" + footer
	}
}

// manualContent reads the app README for the viewport; markdown is shown as
// written.
func manualContent(appPath string) string {
	data, err := os.ReadFile(filepath.Join(appPath, appdir.ReadmeFile))
	if err != nil {
		return i18n.T("tui.no_manual")
	}
	return string(data)
}
