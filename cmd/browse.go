package cmd

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modside-analyzer/db"
	"modside-analyzer/logger"
	"modside-analyzer/mod"
	"modside-analyzer/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the results of a recorded scan",
	Long: `Opens an interactive view of a recorded scan, with the mods grouped
into server capable, client only, and unparseable. Defaults to the most
recent scan; pass --run to view an older one.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runID, _ := cmd.Flags().GetUint("run")
		runBrowse(runID)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Uint("run", 0, "Scan run ID to browse (defaults to the latest)")
}

// ResultRow is one archive's verdict as shown in the browse view
type ResultRow struct {
	FileName    string
	DisplayName string
	ModID       string
	Loader      string
	Category    mod.Category
	Reason      string
	Links       [3]string // CurseForge, Modrinth, MCMOD
}

// BrowseModel represents the state of the browse TUI
type BrowseModel struct {
	run           db.ScanRun
	rows          []ResultRow
	selectedIndex int
	width         int
	height        int
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m BrowseModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.rows)-1 {
			m.selectedIndex++
		}
	case "g":
		m.selectedIndex = 0
	case "G":
		if len(m.rows) > 0 {
			m.selectedIndex = len(m.rows) - 1
		}
	}
	return m, nil
}

// View renders the three category groups with the selection bar, plus the
// selected mod's catalog links in the footer.
func (m BrowseModel) View() string {
	if len(m.rows) == 0 {
		return "No results recorded for this scan.\n"
	}

	var output string
	output += renderBrowseHeader(m.run)
	output += "\n"

	index := 0
	for _, c := range mod.Categories {
		group := m.groupRows(c)
		if len(group) == 0 {
			continue
		}
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.CategoryColor(c))
		output += headerStyle.Render(fmt.Sprintf("%s (%d)", c.Label(), len(group))) + "\n"
		for _, row := range group {
			output += m.renderRow(index, row)
			output += "\n"
			index++
		}
		output += "\n"
	}

	output += renderBrowseFooter()
	if sel := m.selectedRow(); sel != nil && sel.Links[0] != "" {
		linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		output += "\n" + linkStyle.Render(fmt.Sprintf("CF: %s\nMR: %s\nMC: %s", sel.Links[0], sel.Links[1], sel.Links[2]))
	}

	return output
}

// groupRows returns the rows of one category in display order.
func (m BrowseModel) groupRows(c mod.Category) []ResultRow {
	var out []ResultRow
	for _, r := range m.rows {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// selectedRow maps the flat selection index back onto the grouped listing.
func (m BrowseModel) selectedRow() *ResultRow {
	index := 0
	for _, c := range mod.Categories {
		for _, r := range m.groupRows(c) {
			if index == m.selectedIndex {
				row := r
				return &row
			}
			index++
		}
	}
	return nil
}

func renderBrowseHeader(run db.ScanRun) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	return headerStyle.Render(fmt.Sprintf("Scan #%d  %s  (%s)",
		run.ID, run.ModsDir, run.CreatedAt.Format("2006-01-02 15:04")))
}

func renderBrowseFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	return footerStyle.Render("↑/k: up  ↓/j: down  g/G: first/last  q: quit")
}

func (m BrowseModel) renderRow(index int, row ResultRow) string {
	rowStyle := lipgloss.NewStyle().Padding(0, 1)
	if index == m.selectedIndex {
		rowStyle = rowStyle.
			Background(lipgloss.Color("8")).
			Bold(true)
	}

	detail := row.Loader
	if row.Reason != "" {
		detail = row.Reason
	}

	line := fmt.Sprintf("%-42s %-24s %s",
		truncate(row.DisplayName, 40),
		truncate(row.FileName, 22),
		truncate(detail, 30),
	)
	return rowStyle.Render(line)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

// loadRun fetches the run (latest when id is zero) and its rows from the
// database, sorted the way the report sorts them.
func loadRun(runID uint) (db.ScanRun, []ResultRow, error) {
	var run db.ScanRun
	query := db.DB
	if runID > 0 {
		query = query.Where("id = ?", runID)
	}
	if err := query.Order("created_at DESC").First(&run).Error; err != nil {
		return run, nil, err
	}

	var stored []db.ScanResult
	if err := db.DB.Where("scan_run_id = ? AND skipped = ?", run.ID, false).Find(&stored).Error; err != nil {
		return run, nil, err
	}

	rows := make([]ResultRow, 0, len(stored))
	for _, s := range stored {
		rows = append(rows, ResultRow{
			FileName:    s.FileName,
			DisplayName: s.DisplayName,
			ModID:       s.ModID,
			Loader:      s.Loader,
			Category:    mod.ParseCategory(s.Category),
			Reason:      s.Reason,
			Links:       [3]string{s.CurseForgeURL, s.ModrinthURL, s.MCModURL},
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].DisplayName) < strings.ToLower(rows[j].DisplayName)
	})
	return run, rows, nil
}

func runBrowse(runID uint) {
	bootstrap(".")

	run, rows, err := loadRun(runID)
	if err != nil {
		logger.Log.Fatalw("No recorded scan found", zap.Error(err))
	}

	m := BrowseModel{
		run:    run,
		rows:   rows,
		width:  80,
		height: 24,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run browse view", zap.Error(err))
	}
}
