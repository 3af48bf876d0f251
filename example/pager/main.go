// Pager renders a million-row mission log in the terminal, one text row
// per table row, using the same layout engine as the OpenGL example.
//
//	go run ./example/pager/
//
// Arrow keys move the cursor, left/right scroll horizontally, enter
// expands the selected row, q quits. The ID column stays pinned while the
// rest scroll.
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/table"
)

const missionCount = 1_000_000

var missionNames = []string{
	"The Party", "Back Alley Brawl", "Jury Fury", "Riot",
	"Treacherous Swine", "Mall Shootout", "Guardian Angels",
	"The Chase", "Phnom Penh '86", "Death Row",
}

var missionStates = []string{"done", "failed", "active", "locked"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func main() {
	tbl, err := table.New([]table.Column{
		{Label: "ID", InitWidth: 9, MinWidth: 9, MaxWidth: 9, Sticky: true},
		{Label: "Mission", MinWidth: 20, MaxWidth: 40},
		{Label: "Status", MinWidth: 8, MaxWidth: 10},
		{Label: "Payout", MinWidth: 10, MaxWidth: 12},
		{Label: "Notes", MinWidth: 30},
	}, missionCount,
		table.WithRowHeight(1),
		table.WithHeaderRowHeight(1),
		table.WithHeader(
			table.Leaf(0),
			table.Group("Mission Log", table.Leaf(1), table.Leaf(2), table.Leaf(3)),
			table.Leaf(4),
		),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(tbl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type model struct {
	tbl     *table.Table
	cursor  int64
	scrollX float64
	scrollY float64
	width   int
	height  int
}

func newModel(tbl *table.Table) model {
	return model{tbl: tbl}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "pgup":
			m.moveCursor(-int64(m.bodyHeight()))
		case "pgdown":
			m.moveCursor(int64(m.bodyHeight()))
		case "home", "g":
			m.cursor = 0
			m.followCursor()
		case "end", "G":
			m.cursor = m.tbl.RowCount() - 1
			m.followCursor()
		case "left", "h":
			m.scrollX = maxf64(m.scrollX-4, 0)
		case "right", "l":
			m.scrollX = minf64(m.scrollX+4, float64(m.tbl.ContentWidth()))
		case "enter", " ":
			if m.tbl.RowExpanded(m.cursor) {
				_ = m.tbl.CollapseRow(m.cursor)
			} else {
				_ = m.tbl.ExpandRow(m.cursor, 2)
			}
			m.followCursor()
		}
	}
	return m, nil
}

func (m *model) moveCursor(delta int64) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if last := m.tbl.RowCount() - 1; m.cursor > last {
		m.cursor = last
	}
	m.followCursor()
}

// followCursor scrolls just far enough to keep the cursor row in view.
func (m *model) followCursor() {
	if m.height == 0 {
		return
	}
	y, err := m.tbl.ScrollToRow(m.cursor, m.viewport(), m.scrollY)
	if err == nil {
		m.scrollY = y
	}
}

// bodyHeight is the terminal rows left for table body after the status
// line and header band.
func (m *model) bodyHeight() int {
	h := m.height - 1 - m.tbl.HeaderRows()
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) viewport() table.Viewport {
	return table.Viewport{
		ScrollX: m.scrollX,
		ScrollY: m.scrollY,
		Width:   float32(m.width),
		Height:  float32(m.height - 1),
	}
}

func (m model) View() string {
	if m.width == 0 || m.height < 3 {
		return "loading"
	}

	f, err := m.tbl.Layout(m.viewport())
	if err != nil {
		return err.Error()
	}
	defer table.ReleaseFrame(f)

	lines := newScreen(m.width, m.height-1)
	for _, c := range f.Cells {
		clip := f.RegionRects[c.Region]
		lines.blit(c.Rect, clip, missionCell(c.Row, c.Col))
		if c.Rect.H > 1 && c.Col == 1 {
			lines.blitAt(c.Rect.X+1, c.Rect.Y+1, clip, "└ "+missionDetail(c.Row))
		}
	}
	for _, h := range f.Headers {
		lines.blit(h.Rect, f.RegionRects[h.Region], h.Title)
	}

	var b strings.Builder
	headerRows := m.tbl.HeaderRows()
	cursorTop := m.cursorScreenLine(f)
	for y, line := range lines.rows {
		switch {
		case y < headerRows:
			b.WriteString(headerStyle.Render(string(line)))
		case y == cursorTop:
			b.WriteString(cursorStyle.Render(string(line)))
		default:
			b.WriteString(string(line))
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf(
		" %d missions · row %d · enter to expand · q to quit",
		m.tbl.RowCount(), m.cursor)))
	return b.String()
}

// cursorScreenLine returns the screen line of the cursor row's first line,
// or -1 when the cursor is off screen.
func (m model) cursorScreenLine(f *table.Frame) int {
	for _, r := range f.Rows {
		if r.Row == m.cursor {
			return int(math.Round(float64(r.Rect.Y)))
		}
	}
	return -1
}

// screen is a character grid the frame's instructions are blitted into.
// Styling happens per line afterwards, so the grid itself stays plain.
type screen struct {
	w    int
	rows [][]rune
}

func newScreen(w, h int) *screen {
	s := &screen{w: w, rows: make([][]rune, h)}
	for i := range s.rows {
		line := make([]rune, w)
		for j := range line {
			line[j] = ' '
		}
		s.rows[i] = line
	}
	return s
}

// blit writes text into the first line of rect, padded with a leading
// space and clipped to the region rect.
func (s *screen) blit(r table.Rect, clip table.Rect, text string) {
	s.blitAt(r.X, r.Y, clip, " "+text)
}

func (s *screen) blitAt(x, y float32, clip table.Rect, text string) {
	line := int(math.Round(float64(y)))
	if line < 0 || line >= len(s.rows) {
		return
	}
	x0 := int(math.Round(float64(maxf32(x, clip.X))))
	x1 := int(math.Round(float64(minf32(x+float32(len(text)), clip.X+clip.W))))
	col := int(math.Round(float64(x)))
	for i, ch := range text {
		p := col + i
		if p < x0 {
			continue
		}
		if p >= x1 || p >= s.w {
			break
		}
		if p >= 0 {
			s.rows[line][p] = ch
		}
	}
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func missionCell(row int64, col int) string {
	switch col {
	case 0:
		return fmt.Sprintf("%07d", row)
	case 1:
		return missionNames[row%int64(len(missionNames))]
	case 2:
		return missionStates[(row/5)%int64(len(missionStates))]
	case 3:
		return fmt.Sprintf("$%d", 500+(row*61)%9_500)
	case 4:
		return fmt.Sprintf("attempt %d, %d%% complete", 1+row%4, (row*17)%101)
	default:
		return ""
	}
}

func missionDetail(row int64) string {
	return fmt.Sprintf("respect +%d, heat %d, unlocked by mission %07d",
		row%25, row%6, row/2)
}
