package pager

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/lineview/internal/config"
	"github.com/kk-code-lab/lineview/internal/document"
)

func newTestPager(t *testing.T, lineCount, w, h int) (*Pager, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)

	var b strings.Builder
	for i := 0; i < lineCount; i++ {
		b.WriteString("line\n")
	}
	p, err := New(s, document.Build(b.String(), config.Default()), "test.txt")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestHandleKeyScrolling(t *testing.T) {
	p, _ := newTestPager(t, 10, 40, 5) // 4 content rows

	steps := []struct {
		name string
		ev   *tcell.EventKey
		top  int
	}{
		{"down", key(tcell.KeyDown), 1},
		{"j", runeKey('j'), 2},
		{"up", key(tcell.KeyUp), 1},
		{"page down", key(tcell.KeyPgDn), 5},
		{"page down clamps", key(tcell.KeyPgDn), 6},
		{"k", runeKey('k'), 5},
		{"home", key(tcell.KeyHome), 0},
		{"up clamps", key(tcell.KeyUp), 0},
		{"G", runeKey('G'), 6},
		{"g", runeKey('g'), 0},
		{"space", runeKey(' '), 4},
		{"b", runeKey('b'), 0},
		{"end", key(tcell.KeyEnd), 6},
	}
	for _, step := range steps {
		if p.HandleKey(step.ev) {
			t.Fatalf("%s: unexpected exit", step.name)
		}
		if top, _ := p.Position(); top != step.top {
			t.Fatalf("%s: top = %d, want %d", step.name, top, step.top)
		}
	}
}

func TestHandleKeyPanning(t *testing.T) {
	p, _ := newTestPager(t, 1, 40, 5)
	p.HandleKey(key(tcell.KeyRight))
	if _, left := p.Position(); left != horizontalStep {
		t.Fatalf("left = %d after right", left)
	}
	p.HandleKey(runeKey('h'))
	p.HandleKey(runeKey('h'))
	if _, left := p.Position(); left != 0 {
		t.Fatalf("left should clamp at 0, got %d", left)
	}
}

func TestHandleKeyQuit(t *testing.T) {
	p, _ := newTestPager(t, 1, 40, 5)
	for _, ev := range []*tcell.EventKey{runeKey('q'), key(tcell.KeyEscape), key(tcell.KeyCtrlC)} {
		if !p.HandleKey(ev) {
			t.Fatalf("expected %v to quit", ev.Name())
		}
	}
}

func TestDrawStatusLine(t *testing.T) {
	p, s := newTestPager(t, 10, 80, 5)
	p.Draw()

	cells, w, h := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[(h-1)*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	status := b.String()
	if !strings.HasPrefix(status, "test.txt  1-4/10 lines") {
		t.Fatalf("unexpected status %q", status)
	}
}

func TestRunExitsOnQuit(t *testing.T) {
	p, s := newTestPager(t, 3, 40, 5)
	s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestNewRejectsNil(t *testing.T) {
	if _, err := New(nil, &document.Document{}, ""); err == nil {
		t.Fatalf("expected error for nil screen")
	}
}
