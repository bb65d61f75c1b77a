// Package review is an interactive browser over stored applications:
// a ranked list on the left, the full application package on the right.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmehra/jobwire/internal/model"
)

// Lines per entry in the list pane (title + subtitle + blank separator).
const entryHeight = 3

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	entryTitleStyle = lipgloss.NewStyle().
			Bold(true)

	entrySubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	scoreHighStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	scoreMidStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	scoreLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type reviewModel struct {
	records  []model.ScoredPosting
	list     viewport.Model
	detail   viewport.Model
	cursor   int
	active   int // 0=list, 1=detail
	width    int
	height   int
	ready    bool
}

// Run starts the review TUI over the given records (already ranked by
// score). Returns when the user quits.
func Run(records []model.ScoredPosting) error {
	if len(records) == 0 {
		fmt.Println("No stored applications to review.")
		return nil
	}

	m := reviewModel{records: records}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.active = 1 - m.active
			return m, nil
		case "up", "k":
			if m.active == 0 {
				if m.cursor > 0 {
					m.cursor--
					m.syncPanes()
				}
				return m, nil
			}
		case "down", "j":
			if m.active == 0 {
				if m.cursor < len(m.records)-1 {
					m.cursor++
					m.syncPanes()
				}
				return m, nil
			}
		}

		// Forward remaining keys (scrolling) to the detail viewport.
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

// layout sizes both panes from the current terminal dimensions.
func (m *reviewModel) layout() {
	paneHeight := m.height - 5 // borders + header + status bar
	if paneHeight < 3 {
		paneHeight = 3
	}
	listWidth := m.width / 3
	if listWidth < 30 {
		listWidth = 30
	}
	detailWidth := m.width - listWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	m.list = viewport.New(listWidth, paneHeight)
	m.detail = viewport.New(detailWidth, paneHeight)
	m.syncPanes()
}

// syncPanes re-renders both viewports for the current cursor.
func (m *reviewModel) syncPanes() {
	m.list.SetContent(m.renderList())
	m.detail.SetContent(m.renderDetail(m.records[m.cursor]))
	m.detail.SetYOffset(0)

	// Keep the cursor visible in the list pane.
	cursorLine := m.cursor * entryHeight
	if cursorLine < m.list.YOffset {
		m.list.SetYOffset(cursorLine)
	} else if cursorLine+entryHeight >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(cursorLine + entryHeight - m.list.Height)
	}
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHighStyle
	case score >= 60:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

func (m *reviewModel) renderList() string {
	var b strings.Builder
	for i, sp := range m.records {
		score := scoreStyle(sp.Result.MatchScore).Render(fmt.Sprintf("%3d", sp.Result.MatchScore))
		title := fmt.Sprintf("%s  %s", score, sp.Posting.Title)
		subtitle := fmt.Sprintf("     %s · %s", sp.Posting.Company, sp.Posting.Source)

		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render(title) + "\n")
			b.WriteString(selectedSubtitleStyle.Render(subtitle) + "\n\n")
		} else {
			b.WriteString(entryTitleStyle.Render(title) + "\n")
			b.WriteString(entrySubtitleStyle.Render(subtitle) + "\n\n")
		}
	}
	return b.String()
}

func (m *reviewModel) renderDetail(sp model.ScoredPosting) string {
	var b strings.Builder

	b.WriteString(entryTitleStyle.Render(sp.Posting.Title) + "\n")
	b.WriteString(entrySubtitleStyle.Render(
		fmt.Sprintf("%s · %s · %s", sp.Posting.Company, sp.Posting.Location, sp.Posting.Source)) + "\n")
	if sp.Posting.Salary != "" {
		b.WriteString(entrySubtitleStyle.Render(sp.Posting.Salary) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Match score") + " " +
		scoreStyle(sp.Result.MatchScore).Render(fmt.Sprintf("%d/100", sp.Result.MatchScore)) + "\n\n")

	writeSection(&b, "Why you match", sp.Result.MatchReasons)
	writeSection(&b, "Gaps to address", sp.Result.Gaps)
	writeSection(&b, "Keywords to add", sp.Result.KeywordsToAdd)

	if sp.Result.ApplicationStrategy != "" {
		b.WriteString(sectionStyle.Render("Strategy") + "\n")
		b.WriteString(bodyStyle.Render(sp.Result.ApplicationStrategy) + "\n\n")
	}

	if len(sp.Result.ResumeImprovements) > 0 {
		b.WriteString(sectionStyle.Render("Resume improvements") + "\n")
		for _, ri := range sp.Result.ResumeImprovements {
			b.WriteString(bodyStyle.Render(fmt.Sprintf("• [%s] %s\n  → %s\n", ri.Section, ri.CurrentIssue, ri.ImprovedVersion)))
		}
		b.WriteString("\n")
	}

	if sp.Result.CoverLetter != "" {
		b.WriteString(sectionStyle.Render("Cover letter") + "\n")
		b.WriteString(bodyStyle.Render(sp.Result.CoverLetter) + "\n\n")
	}

	if sp.Posting.ApplyLink != "" {
		b.WriteString(sectionStyle.Render("Apply") + " " + sp.Posting.ApplyLink + "\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(label) + "\n")
	for _, it := range items {
		b.WriteString(bodyStyle.Render("• "+it) + "\n")
	}
	b.WriteString("\n")
}

func (m reviewModel) View() string {
	if !m.ready {
		return "loading..."
	}

	listPane := m.list.View()
	detailPane := m.detail.View()

	var left, right string
	if m.active == 0 {
		left = activeBorderStyle.Render(listPane)
		right = inactiveBorderStyle.Render(detailPane)
	} else {
		left = inactiveBorderStyle.Render(listPane)
		right = activeBorderStyle.Render(detailPane)
	}

	header := headerStyle.Render(fmt.Sprintf("jobwire review · %d applications", len(m.records)))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	status := statusBarStyle.Render("↑/↓ navigate · tab switch pane · pgup/pgdn scroll · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, status)
}
