package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rdsim/internal/models"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/turing"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestMenuStartsModel(t *testing.T) {
	m := *NewInteractiveApp(turing.WithSize(8), turing.WithSeed(1))
	m = send(m, key("down"), key("down"), key("enter"))

	if m.state != stateSim {
		t.Fatalf("expected sim state, got %v", m.state)
	}
	if m.pattern.Name() != "GrayScott" {
		t.Errorf("expected GrayScott, got %s", m.pattern.Name())
	}
	if !m.pattern.Initialized() {
		t.Error("pattern should be initialized on start")
	}

	m = send(m, tickMsg{}, tickMsg{})
	if m.pattern.Steps() != 2 {
		t.Errorf("expected 2 steps, got %d", m.pattern.Steps())
	}
	if len(m.history) != 2 {
		t.Errorf("expected 2 history points, got %d", len(m.history))
	}

	m = send(m, key("esc"))
	if m.state != stateMenu {
		t.Error("esc should return to the menu")
	}
}

func TestSimKeys(t *testing.T) {
	p, err := models.NewGrayScott(turing.WithSize(8), turing.WithSeed(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m := *NewLiveApp(p)

	m = send(m, key(" "), tickMsg{})
	if !m.paused || p.Steps() != 0 {
		t.Error("paused view must not step")
	}
	m = send(m, key("n"))
	if p.Steps() != 1 {
		t.Errorf("n should single-step, got %d steps", p.Steps())
	}

	m = send(m, key("s"))
	if m.currentSpecies() != "V" {
		t.Errorf("expected species V, got %s", m.currentSpecies())
	}

	m = send(m, key("+"), key("+"), key("-"))
	if m.speed != 2 {
		t.Errorf("expected speed 2, got %d", m.speed)
	}

	before, _ := p.Param("F")
	m = send(m, key("right"))
	after, _ := p.Param("F")
	if after <= before {
		t.Errorf("right should raise F: %g -> %g", before, after)
	}

	m = send(m, key("down"), key("left"))
	if k, _ := p.Param("k"); k >= 0.062 {
		t.Errorf("left should lower k, got %g", k)
	}
	if m.err != nil {
		t.Errorf("unexpected error %v", m.err)
	}

	if out := m.View(); !strings.Contains(out, "GrayScott") || !strings.Contains(out, "paused") {
		t.Errorf("view missing header: %q", out)
	}
}

func TestSliderClampsAtBound(t *testing.T) {
	p, _ := models.NewGrayScott(turing.WithSize(4), turing.WithParam("F", 0.1))
	m := *NewLiveApp(p)
	m = send(m, key("right"), key("right"))
	if f, _ := p.Param("F"); f != 0.1 || m.err != nil {
		t.Errorf("F should stay at its maximum, got %g (%v)", f, m.err)
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "GrayScott", "V", [2]float64{0, 1}, 1000)

	f := turing.NewField(4)
	r.OnFrame(sim.Frame{Step: 3, Time: 3, Fields: map[string]turing.Field{"V": f}})
	out := buf.String()
	if !strings.Contains(out, "step=3") || !strings.Contains(out, "▀") {
		t.Errorf("unexpected output %q", out)
	}

	buf.Reset()
	r.OnFrame(sim.Frame{Fields: map[string]turing.Field{"U": f}})
	if buf.Len() != 0 && strings.Contains(buf.String(), "▀") {
		t.Error("frames without the species must not render")
	}
}
