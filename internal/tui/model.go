package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reposcope/internal/domain"
)

// AnalyzerPort is the TUI-facing subset of the analyzer service.
type AnalyzerPort interface {
	Search(term string, topK int) []domain.ChunkMatch
	Report() domain.Report
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   AnalyzerPort
	input     textinput.Model
	viewport  viewport.Model
	summary   domain.Summary
	matches   []domain.ChunkMatch
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(service AnalyzerPort, summary domain.Summary) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a term to locate it in the chunks, Enter to search, Esc for summary"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Analyzed. Enter to search chunks."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + stats
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.matches = m.service.Search(q, 10)
				m.cursor = 0
				m.lastQuery = q
				m.status = fmt.Sprintf("Chunks matching %q", q)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "esc":
			m.matches = nil
			m.lastQuery = ""
			m.status = "Summary view."
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case "down":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.matches)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "up":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.matches)) % len(m.matches)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current content.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	report := m.service.Report()
	header := lipgloss.NewStyle().Bold(true).Render("reposcope")
	stats := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		fmt.Sprintf("%d chunks · %d entities · %d edges · %d groups",
			len(report.Chunks), len(report.Entities), report.EdgeCount, len(report.Components)))
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + stats + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if len(m.matches) > 0 {
		return m.renderCurrentMatch()
	}
	return m.renderSummary()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Execution flow"))
	b.WriteString("\n")
	for i, step := range m.summary.ExecutionFlow {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Key components"))
	b.WriteString("\n")
	for _, c := range m.summary.KeyComponents {
		b.WriteString("  • " + c + "\n")
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Key functions"))
	b.WriteString("\n")
	for _, f := range m.summary.KeyFunctions {
		b.WriteString("  • " + f + "\n")
	}
	report := m.service.Report()
	if len(report.Components) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Entity groups"))
		b.WriteString("\n")
		for i, group := range report.Components {
			b.WriteString(fmt.Sprintf("  %d) %s\n", i+1, strings.Join(group, ", ")))
		}
	}
	return b.String()
}

func (m Model) renderCurrentMatch() string {
	r := m.matches[m.cursor]
	title := fmt.Sprintf("Chunk %d — match %d/%d  score=%.3f", r.Chunk.Index, m.cursor+1, len(m.matches), r.Score)
	if n := len(r.Chunk.Fingerprint); n > 0 {
		title += fmt.Sprintf("  fp[%d]=%.3f…", n, r.Chunk.Fingerprint[0])
	}
	body := highlightBestSentence(r.Chunk.Text, m.lastQuery)
	return title + "\n\n" + body
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
