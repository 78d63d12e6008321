package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tuiInfoStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// TUI implements UI using Bubble Tea for interactive report browsing.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReport prints the report without interaction.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(t.output, renderReport(report))

	return err
}

// DisplayFileCounts prints per-file counts without interaction.
func (t *TUI) DisplayFileCounts(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(t.output, renderFileCountsTable(report))

	return err
}

// BrowseReport opens the report in a scrollable viewport. When the output
// is not a terminal, or the report fits on screen, it falls back to a plain
// print.
func (t *TUI) BrowseReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderReport(report)

	file, ok := t.output.(*os.File)
	if !ok || !IsTTY(file) {
		_, err := io.WriteString(t.output, content)
		return err
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err == nil && strings.Count(content, "\n") < height {
		_, err := io.WriteString(t.output, content)
		return err
	}

	model := newReportModel(report, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// reportModel is the Bubble Tea model for browsing a report.
type reportModel struct {
	title    string
	footer   string
	viewport viewport.Model
	quitting bool
}

func newReportModel(report m.Report, content string, width, height int) reportModel {
	model := reportModel{
		title:  fmt.Sprintf("unwrapaudit — %s under %s", report.Pattern, report.Root),
		footer: fmt.Sprintf("%d finding(s) · j/k scroll · q quit", report.Total()),
	}

	model.viewport = viewport.New(width, contentHeight(height))
	model.viewport.SetContent(content)

	return model
}

// contentHeight reserves one line each for the title and footer.
func contentHeight(height int) int {
	if height <= 2 {
		return 1
	}

	return height - 2
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.viewport.Width = msg.Width
		rm.viewport.Height = contentHeight(msg.Height)

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm reportModel) View() string {
	if rm.quitting {
		return ""
	}

	return tuiTitleStyle.Render(rm.title) + "\n" +
		rm.viewport.View() + "\n" +
		tuiInfoStyle.Render(rm.footer)
}
