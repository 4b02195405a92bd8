package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"modside-analyzer/logger"
	"modside-analyzer/mod"
	"modside-analyzer/scanner"
	"modside-analyzer/ui"
)

// ScanModel controls the UI for the scan command
type ScanModel struct {
	spinner      spinner.Model
	progressChan chan scanner.ProgressMsg
	opts         scanner.Options

	// State
	status    string
	recent    []string
	errors    []string
	summary   string
	done      bool
	scanError string

	// Counters
	current       int
	total         int
	serverCapable int
	clientOnly    int
	unparseable   int
	skipped       int
}

func initialScanModel(opts scanner.Options) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ScanModel{
		spinner:      s,
		progressChan: make(chan scanner.ProgressMsg, 100), // Buffer slightly to avoid blocking
		opts:         opts,
		status:       "Scanning...",
		recent:       []string{},
		errors:       []string{},
	}
}

func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startScan(),
		m.waitForActivity(),
	)
}

func (m ScanModel) startScan() tea.Cmd {
	return func() tea.Msg {
		// Run the batch in a separate goroutine; the closed channel marks
		// the end of the run.
		go func() {
			defer close(m.progressChan)
			summary, err := scanner.Scan(m.opts, logger.Log, m.progressChan)
			if err != nil {
				logger.Log.Errorw("Scan failed", zap.Error(err))
				m.progressChan <- scanner.ProgressMsg{Type: "fatal", Message: err.Error()}
				return
			}
			finishScan(summary, m.opts)
			if summary.LogPath != "" {
				m.progressChan <- scanner.ProgressMsg{Type: "report", Message: summary.LogPath}
			}
		}()
		return nil
	}
}

func (m ScanModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.progressChan
		if !ok {
			return scanner.ProgressMsg{Type: "done"}
		}
		return msg
	}
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// If done, allow any key to exit
		if m.done {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanner.ProgressMsg:
		switch msg.Type {
		case "done":
			m.done = true
			m.status = "Finished"
			return m, tea.Quit

		case "status":
			m.status = msg.Message
			m.total = msg.Total

		case "classified":
			m.current = msg.Current
			m.total = msg.Total
			m.countCategory(msg.Category)
			line := fmt.Sprintf("%s → %s", msg.FileName, ui.Colorize(msg.Category.Label(), msg.Category))
			if msg.Message != "" {
				line += fmt.Sprintf(" (%s)", msg.Message)
			}
			m.pushRecent(line)

		case "skipped":
			m.current = msg.Current
			m.skipped++
			m.errors = append(m.errors, fmt.Sprintf("%s: %s", msg.FileName, msg.Message))

		case "report":
			m.pushRecent(fmt.Sprintf("Report written to %s", msg.Message))

		case "summary":
			m.summary = msg.Message

		case "fatal":
			m.scanError = msg.Message
		}

		return m, m.waitForActivity()
	}

	return m, nil
}

func (m *ScanModel) countCategory(c mod.Category) {
	switch c {
	case mod.ServerCapable:
		m.serverCapable++
	case mod.ClientOnly:
		m.clientOnly++
	case mod.Unparseable:
		m.unparseable++
	}
}

// pushRecent keeps the last few classification lines visible.
func (m *ScanModel) pushRecent(line string) {
	m.recent = append(m.recent, line)
	if len(m.recent) > 8 {
		m.recent = m.recent[len(m.recent)-8:]
	}
}

func (m ScanModel) View() string {
	if m.scanError != "" {
		return fmt.Sprintf("\n Error: %s\n", m.scanError)
	}

	var symbol string
	if m.done {
		symbol = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	} else {
		symbol = m.spinner.View()
	}

	progress := ""
	if m.total > 0 {
		progress = fmt.Sprintf(" [%d/%d]", m.current, m.total)
	}
	s := fmt.Sprintf("\n %s %s%s\n\n", symbol, m.status, progress)

	counts := fmt.Sprintf("  %s  %s  %s",
		ui.Colorize(fmt.Sprintf("server capable: %d", m.serverCapable), mod.ServerCapable),
		ui.Colorize(fmt.Sprintf("client only: %d", m.clientOnly), mod.ClientOnly),
		ui.Colorize(fmt.Sprintf("unparseable: %d", m.unparseable), mod.Unparseable),
	)
	s += counts + "\n\n"

	if len(m.recent) > 0 {
		for _, line := range m.recent {
			s += fmt.Sprintf("  • %s\n", line)
		}
		s += "\n"
	}

	if len(m.errors) > 0 {
		s += lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Skipped:") + "\n"
		for _, e := range m.errors {
			s += fmt.Sprintf("  • %s\n", e)
		}
		s += "\n"
	}

	if m.done {
		s += lipgloss.NewStyle().Bold(true).Render(m.summary) + "\n"
	}

	return s
}

func runScanTUI(opts scanner.Options) {
	p := tea.NewProgram(initialScanModel(opts))
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run scan view", zap.Error(err))
	}
}
