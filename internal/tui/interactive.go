package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rdsim/internal/models"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/turing"
	"github.com/san-kum/rdsim/internal/viz"
)

type state int

const (
	stateMenu state = iota
	stateSim
)

const (
	maxSpeed    = 64
	historySize = 60
	sliderStep  = 0.02
)

type model struct {
	state    state
	cursor   int
	entries  []models.Entry
	opts     []turing.Option
	fromMenu bool

	pattern     *turing.Pattern
	species     int
	paramCursor int
	paused      bool
	speed       int
	theme       viz.Theme
	history     []float64
	err         error

	width  int
	height int
}

// NewInteractiveApp starts on the model menu. opts are applied to every
// pattern built from it.
func NewInteractiveApp(opts ...turing.Option) *model {
	return &model{
		state:    stateMenu,
		entries:  models.Available(),
		opts:     opts,
		fromMenu: true,
		speed:    1,
		theme:    viz.CurrentTheme,
		width:    80,
		height:   24,
	}
}

// NewLiveApp opens the live view of an existing pattern directly.
func NewLiveApp(p *turing.Pattern) *model {
	m := &model{
		state:  stateSim,
		speed:  1,
		theme:  viz.CurrentTheme,
		width:  80,
		height: 24,
	}
	m.attach(p)
	return m
}

func (m *model) attach(p *turing.Pattern) {
	m.pattern = p
	m.species = 0
	m.paramCursor = 0
	m.paused = false
	m.history = m.history[:0]
	m.err = nil
	if !p.Initialized() {
		m.err = p.InitConcentrations()
	}
}

func (m model) Init() tea.Cmd {
	if m.state == stateSim {
		return tick()
	}
	return nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim {
			return m, nil
		}
		if !m.paused && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		p, err := m.entries[m.cursor].New(m.opts...)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.attach(p)
		m.state = stateSim
		return m, tick()
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	tunable := m.pattern.Info().Tunable
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.fromMenu {
			m.state = stateMenu
			m.pattern = nil
			m.err = nil
		}
	case " ":
		m.paused = !m.paused
	case "s", "tab":
		m.species = (m.species + 1) % len(m.pattern.Species())
		m.history = m.history[:0]
	case "r":
		m.err = m.pattern.InitConcentrations()
		m.history = m.history[:0]
	case "n":
		if m.paused && m.err == nil {
			speed := m.speed
			m.speed = 1
			m.step()
			m.speed = speed
		}
	case "+", "=":
		m.speed = min(m.speed*2, maxSpeed)
	case "-":
		m.speed = max(m.speed/2, 1)
	case "t":
		m.theme = viz.NextTheme(m.theme)
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunable)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.nudge(-sliderStep)
	case "right", "l":
		m.nudge(sliderStep)
	}
	return m, nil
}

// nudge moves the selected tunable parameter along its slider scale.
func (m *model) nudge(delta float64) {
	tunable := m.pattern.Info().Tunable
	if len(tunable) == 0 {
		return
	}
	p, ok := m.param(tunable[m.paramCursor])
	if !ok {
		return
	}
	pos := min(max(p.Position()+delta, 0), 1)
	if err := m.pattern.SetParam(p.Name, p.Scaled(pos)); err != nil {
		m.err = err
	}
}

func (m model) param(name string) (turing.Parameter, bool) {
	for _, p := range m.pattern.Parameters() {
		if p.Name == name {
			return p, true
		}
	}
	return turing.Parameter{}, false
}

func (m *model) currentSpecies() string {
	return m.pattern.Species()[m.species]
}

func (m *model) step() {
	for i := 0; i < m.speed; i++ {
		if err := m.pattern.Step(); err != nil {
			m.err = err
			return
		}
	}
	f, err := m.pattern.Field(m.currentSpecies())
	if err != nil {
		m.err = err
		return
	}
	if !f.IsValid() {
		m.err = fmt.Errorf("state diverged at step %d", m.pattern.Steps())
		m.paused = true
		return
	}
	m.history = append(m.history, sim.Summarize(f).Std)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(viz.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + viz.Title.Render("r d s i m") + "\n")
	b.WriteString(viz.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, e := range m.entries {
		desc := e.Info().Description
		if i == m.cursor {
			b.WriteString("      " + viz.Selected.Render("▸ "+fmt.Sprintf("%-16s", e.Name)) + viz.MetricLabel.Render(desc) + "\n")
		} else {
			b.WriteString("        " + viz.MetricLabel.Render(fmt.Sprintf("%-16s", e.Name)) + viz.Subtle.Render(desc) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + viz.StatusError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render("      ↑↓ select   enter start   q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	p := m.pattern
	info := p.Info()
	species := m.currentSpecies()

	status := viz.StatusRunning.Render("● running")
	switch {
	case m.err != nil:
		status = viz.StatusError.Render("✖ " + m.err.Error())
	case m.paused:
		status = viz.StatusPaused.Render("❚❚ paused")
	}
	header := fmt.Sprintf("  %s  %s  step %d  t=%.3f  ×%d  %s",
		viz.Title.Render(info.Name), viz.Selected.Render(species), p.Steps(), p.Time(), m.speed, status)

	maxSize := min(m.width-36, (m.height-6)*2)
	var heat string
	if f, err := p.Field(species); err == nil {
		heat = viz.Heatmap(f, info.ContrastLimits, m.theme, max(maxSize, 8))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, heat, viz.Colorbar(info.ContrastLimits, m.theme, 16))

	var side strings.Builder
	side.WriteString(viz.MetricLabel.Render("parameters") + "\n")
	for i, name := range info.Tunable {
		v, _ := p.Param(name)
		line := fmt.Sprintf("%-12s %10.4g", name, v)
		if i == m.paramCursor {
			side.WriteString(viz.Selected.Render("▸ "+line) + "\n")
		} else {
			side.WriteString("  " + viz.MetricValue.Render(line) + "\n")
		}
	}
	side.WriteString("\n" + viz.MetricLabel.Render("contrast "+species) + "\n")
	side.WriteString(viz.Sparkline(m.history, 24) + "\n")
	side.WriteString("\n" + viz.MetricLabel.Render("theme ") + m.theme.Name + "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", viz.Panel.Render(side.String()))

	hints := "space pause  n step  s species  r reinit  ↑↓ param  ←→ adjust  +/- speed  t theme  q quit"
	if m.fromMenu {
		hints += "  esc menu"
	}
	return header + "\n\n" + body + "\n" + viz.KeyHint.Render("  "+hints) + "\n"
}

// RunInteractive opens the model menu.
func RunInteractive(opts ...turing.Option) error {
	p := tea.NewProgram(NewInteractiveApp(opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunLive opens the live view of p.
func RunLive(p *turing.Pattern) error {
	prog := tea.NewProgram(NewLiveApp(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
