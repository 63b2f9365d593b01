package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

// statusTTL is how long a status line stays up. Tests shorten it.
var statusTTL = 3 * time.Second

// imageLoadedMsg carries the outcome of one image load. Outcomes from an
// older mount generation are dropped.
type imageLoadedMsg struct {
	generation int
	ref        string
	img        assets.Image
	err        error
}

// contentChangedMsg is sent when the guide file changed on disk.
type contentChangedMsg struct{}

// contentReloadedMsg carries the re-read guide.
type contentReloadedMsg struct {
	guide *guide.Guide
	err   error
}

type clipboardMsg struct {
	count int
	err   error
}

type statusClearMsg struct{ seq int }

// loadImageCmd resolves ref off the UI goroutine.
func loadImageCmd(store *assets.Store, generation int, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := store.Load(ref)
		return imageLoadedMsg{generation: generation, ref: ref, img: img, err: err}
	}
}

// waitForChangeCmd blocks until the watcher reports a change.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return contentChangedMsg{}
	}
}

func reloadContentCmd(reload func() (*guide.Guide, error)) tea.Cmd {
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		g, err := reload()
		return contentReloadedMsg{guide: g, err: err}
	}
}

func copyRefsCmd(refs []string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(strings.Join(refs, "\n"))
		return clipboardMsg{count: len(refs), err: err}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func pluralImages(n int) string {
	if n == 1 {
		return "1 image"
	}
	return fmt.Sprintf("%d images", n)
}
