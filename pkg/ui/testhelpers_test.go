package ui

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

// newTestTheme renders without color so output can be matched as text.
func newTestTheme() Theme {
	return ClassicTheme(lipgloss.NewRenderer(io.Discard))
}

func testGuide(t testing.TB) *guide.Guide {
	t.Helper()
	g, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return g
}

func pngData(t testing.TB) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// assetFS holds every screenshot of the default guide except 매수4.png.
func assetFS(t testing.TB, g *guide.Guide) fstest.MapFS {
	t.Helper()
	data := pngData(t)
	fsys := fstest.MapFS{}
	for _, ref := range g.ImageRefs() {
		if ref == "매수4.png" {
			continue
		}
		fsys[ref] = &fstest.MapFile{Data: data}
	}
	return fsys
}

func newTestController(t testing.TB) (PageController, fstest.MapFS) {
	t.Helper()
	g := testGuide(t)
	fsys := assetFS(t, g)
	m := NewPageController(g, Options{
		Theme:           newTestTheme(),
		Store:           assets.NewStore(assets.FSResolver{FS: fsys}),
		ScrollThreshold: 20,
		Width:           100,
		Height:          30,
	})
	return m, fsys
}

// drain runs cmd and every command it produces, feeding messages back into
// the model, until nothing is left.
func drain(t testing.TB, m PageController, cmd tea.Cmd) PageController {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("drain: command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(PageController)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t testing.TB, m PageController, keys string) PageController {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return drain(t, next.(PageController), cmd)
}

// selectDir switches tabs and settles the resulting loads.
func selectDir(t testing.TB, m PageController, d guide.Direction) PageController {
	t.Helper()
	cmd := m.SelectDirection(d)
	return drain(t, m, cmd)
}
