package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/debug"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxCardWidth  = 100
	headerLines   = 3 // title, subtitle, rule
	tabLines      = 2 // tab row, spacer
)

// Options configures a PageController.
type Options struct {
	Theme           Theme
	Store           *assets.Store
	Direction       guide.Direction
	ScrollThreshold int

	// Reload re-reads the guide after Changes fires. Both are optional.
	Reload  func() (*guide.Guide, error)
	Changes <-chan struct{}

	Width  int
	Height int
}

// DefaultOptions returns options for the classic theme, buy tab and images
// resolved from the working directory.
func DefaultOptions() Options {
	return Options{
		Theme:           ClassicTheme(lipgloss.DefaultRenderer()),
		Store:           assets.NewStore(assets.NewDirResolver("")),
		Direction:       guide.Buy,
		ScrollThreshold: guide.DefaultScrollThreshold,
	}
}

// PageController is the guide page. It owns the UI state (active tab and
// the scrolled flag) and renders the active step sequence through a
// StepRenderer.
type PageController struct {
	guide    *guide.Guide
	theme    Theme
	store    *assets.Store
	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	state     guide.UIState
	threshold int

	// Image regions of the currently mounted cards. A tab switch remounts
	// and bumps generation so late loads for unmounted cards are dropped.
	generation int
	regions    map[string]ImageRegion

	reload  func() (*guide.Guide, error)
	changes <-chan struct{}

	width     int
	height    int
	status    string
	statusSeq int
	quitting  bool
}

// NewPageController creates the page in its initial state: the configured
// direction (buy by default), not scrolled.
func NewPageController(g *guide.Guide, opts Options) PageController {
	if opts.Theme.Renderer == nil {
		opts.Theme = ClassicTheme(lipgloss.DefaultRenderer())
	}
	if opts.Store == nil {
		opts.Store = assets.NewStore(assets.NewDirResolver(""))
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	m := PageController{
		guide:     g,
		theme:     opts.Theme,
		store:     opts.Store,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(opts.Width, opts.Height),
		state:     guide.DefaultUIState(),
		threshold: opts.ScrollThreshold,
		reload:    opts.Reload,
		changes:   opts.Changes,
		width:     opts.Width,
		height:    opts.Height,
	}
	if opts.Direction.Valid() {
		m.state.ActiveDirection = opts.Direction
	}
	m.mount()
	m.layout()
	return m
}

// Init starts loading the mounted images and listening for content changes.
func (m PageController) Init() tea.Cmd {
	return tea.Batch(m.loadCmds(), waitForChangeCmd(m.changes))
}

// Update handles input and async results.
func (m PageController) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case imageLoadedMsg:
		if msg.generation != m.generation {
			debug.Log("ui: dropping stale load of %s (gen %d, now %d)", msg.ref, msg.generation, m.generation)
			return m, nil
		}
		regions := make(map[string]ImageRegion, len(m.regions))
		for ref, r := range m.regions {
			regions[ref] = r
		}
		regions[msg.ref] = regionFromResult(msg)
		m.regions = regions
		m.refresh()
		return m, nil

	case contentChangedMsg:
		return m, tea.Batch(reloadContentCmd(m.reload), waitForChangeCmd(m.changes))

	case contentReloadedMsg:
		if msg.err != nil {
			debug.Log("ui: content reload failed: %v", msg.err)
			return m, m.setStatus("reload failed: " + msg.err.Error())
		}
		m.guide = msg.guide
		m.mount()
		m.refresh()
		return m, tea.Batch(m.loadCmds(), m.setStatus("guide reloaded"))

	case clipboardMsg:
		if msg.err != nil {
			return m, m.setStatus("copy failed: " + msg.err.Error())
		}
		return m, m.setStatus("copied " + pluralImages(msg.count))

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.OnScroll(m.viewport.YOffset)
		return m, cmd
	}
	return m, nil
}

func (m PageController) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.viewport
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Buy):
		return m, m.SelectDirection(guide.Buy)
	case key.Matches(msg, m.keys.Sell):
		return m, m.SelectDirection(guide.Sell)
	case key.Matches(msg, m.keys.Toggle):
		return m, m.SelectDirection(m.state.ActiveDirection.Other())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.retryFailed()
	case key.Matches(msg, m.keys.Copy):
		return m, copyRefsCmd(m.refsToCopy())
	case key.Matches(msg, m.keys.Up):
		vp.SetYOffset(vp.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		vp.SetYOffset(vp.YOffset + 1)
	case key.Matches(msg, m.keys.HalfUp):
		vp.SetYOffset(vp.YOffset - vp.Height/2)
	case key.Matches(msg, m.keys.HalfDown):
		vp.SetYOffset(vp.YOffset + vp.Height/2)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.OnScroll(m.viewport.YOffset)
		return m, cmd
	}
	m.OnScroll(vp.YOffset)
	return m, nil
}

// SelectDirection makes d the active tab. Selecting the active tab is a
// no-op. Otherwise the cards are remounted and their image loads started.
func (m *PageController) SelectDirection(d guide.Direction) tea.Cmd {
	if !m.state.SelectDirection(d) {
		return nil
	}
	debug.Log("ui: tab -> %s", d)
	m.mount()
	m.refresh()
	m.OnScroll(m.viewport.YOffset)
	return m.loadCmds()
}

// OnScroll records whether offset is past the scroll threshold. It only
// affects header chrome.
func (m *PageController) OnScroll(offset int) {
	m.state.OnScroll(offset, m.threshold)
}

// State returns the current UI state.
func (m PageController) State() guide.UIState { return m.state }

// Guide returns the guide being shown.
func (m PageController) Guide() *guide.Guide { return m.guide }

// VisibleSteps returns the steps of the active sequence, in render order.
func (m PageController) VisibleSteps() []guide.StepRecord {
	return m.guide.Sequence(m.state.ActiveDirection).Steps()
}

// Region returns the render state of a mounted image.
func (m PageController) Region(ref string) (ImageRegion, bool) {
	r, ok := m.regions[ref]
	return r, ok
}

// Cards renders the active sequence, one string per card.
func (m PageController) Cards() []string {
	d := m.state.ActiveDirection
	return m.renderer().RenderCards(m.guide.Sequence(d), d, m.lookup)
}

// Status returns the transient status line.
func (m PageController) Status() string { return m.status }

func (m *PageController) mount() {
	m.generation++
	seq := m.guide.Sequence(m.state.ActiveDirection)
	m.regions = make(map[string]ImageRegion, seq.Len())
	for _, ref := range seq.ImageRefs() {
		m.regions[ref] = regionFromStore(m.store, ref)
	}
}

// loadCmds starts a load for every mounted image the store has no outcome
// for. Loads run concurrently and complete in any order.
func (m PageController) loadCmds() tea.Cmd {
	var cmds []tea.Cmd
	seen := make(map[string]bool)
	for _, ref := range m.guide.Sequence(m.state.ActiveDirection).ImageRefs() {
		if seen[ref] || m.regions[ref].Status != assets.StatusLoading {
			continue
		}
		seen[ref] = true
		cmds = append(cmds, loadImageCmd(m.store, m.generation, ref))
	}
	return tea.Batch(cmds...)
}

// retryFailed drops every cached failure, not only the active tab's, so the
// other tab reloads its broken images on its next selection.
func (m *PageController) retryFailed() tea.Cmd {
	var failed int
	for _, r := range m.regions {
		if r.Status == assets.StatusFailed {
			failed++
		}
	}
	if failed == 0 {
		return m.setStatus("no failed images")
	}
	refs := m.store.ForgetFailed()
	debug.Log("ui: retry forgets %d failed refs", len(refs))
	m.mount()
	m.refresh()
	return tea.Batch(m.loadCmds(), m.setStatus("retrying "+pluralImages(failed)))
}

// refsToCopy returns the failed references of the active tab, or all of its
// references when nothing failed.
func (m PageController) refsToCopy() []string {
	refs := m.guide.Sequence(m.state.ActiveDirection).ImageRefs()
	var failed []string
	for _, ref := range refs {
		if m.regions[ref].Status == assets.StatusFailed {
			failed = append(failed, ref)
		}
	}
	if len(failed) > 0 {
		return failed
	}
	return refs
}

func (m *PageController) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	return clearStatusCmd(m.statusSeq)
}

func (m PageController) lookup(ref string) ImageRegion {
	if r, ok := m.regions[ref]; ok {
		return r
	}
	return ImageRegion{Ref: ref, Status: assets.StatusLoading}
}

func regionFromResult(msg imageLoadedMsg) ImageRegion {
	if msg.err != nil {
		return ImageRegion{Ref: msg.ref, Status: assets.StatusFailed, Err: msg.err}
	}
	return ImageRegion{Ref: msg.ref, Status: assets.StatusLoaded, Image: msg.img}
}

func (m PageController) contentWidth() int {
	return clamp(m.width-2, 40, maxCardWidth)
}

func (m PageController) renderer() StepRenderer {
	return NewStepRenderer(m.theme, m.guide, m.contentWidth())
}

func (m *PageController) layout() {
	m.help.Width = m.width
	footer := lipgloss.Height(m.renderFooter())
	body := m.height - headerLines - tabLines - footer
	if body < 3 {
		body = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = body
	m.refresh()
}

// refresh re-renders the scrollable body into the viewport.
func (m *PageController) refresh() {
	m.viewport.SetContent(m.renderBody())
}

// View renders the page.
func (m PageController) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		"",
		m.viewport.View(),
		m.renderFooter(),
	)
}

// renderHeader draws the sticky header. Once scrolled past the threshold it
// names the active track and drops a heavier shadow rule.
func (m PageController) renderHeader() string {
	t := m.theme
	r := t.Renderer

	title := r.NewStyle().Bold(true).Foreground(t.Primary).Render("▤ " + m.guide.Title)
	if m.state.HasScrolled {
		track := m.guide.Track(m.state.ActiveDirection)
		title += r.NewStyle().Foreground(t.Accent(m.state.ActiveDirection)).
			Render("  " + t.Icon(m.state.ActiveDirection) + " " + track.Heading)
	}
	subtitle := t.MutedText.Render(m.guide.Subtitle)

	glyph := "─"
	if m.state.HasScrolled {
		glyph = "━"
	}
	rule := r.NewStyle().Foreground(t.Border).Render(strings.Repeat(glyph, m.width))

	return lipgloss.JoinVertical(lipgloss.Left,
		truncateStyled(title, m.width),
		subtitle,
		rule,
	)
}

func (m PageController) renderTabs() string {
	t := m.theme
	r := t.Renderer

	var tabs []string
	for _, d := range guide.Directions {
		label := t.Icon(d) + " " + m.guide.Track(d).Tab
		style := r.NewStyle().Padding(0, 2)
		if d == m.state.ActiveDirection {
			style = style.Bold(true).Foreground(ThemeFg("#FFFFFF")).Background(t.Accent(d))
		} else {
			style = style.Foreground(t.Muted)
		}
		tabs = append(tabs, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs[0], " ", tabs[1])
	return r.NewStyle().Width(m.width).Align(lipgloss.Center).Render(row)
}

func (m PageController) renderFooter() string {
	t := m.theme
	hints := m.help.View(m.keys)
	if m.status == "" {
		return hints
	}
	status := t.Renderer.NewStyle().Foreground(t.Info).Render(m.status)
	return lipgloss.JoinVertical(lipgloss.Left, status, hints)
}

// renderBody is the scrollable content: notice, section heading, cards and
// the summary box.
func (m PageController) renderBody() string {
	t := m.theme
	r := t.Renderer
	width := m.contentWidth()
	d := m.state.ActiveDirection
	track := m.guide.Track(d)

	var parts []string

	if len(m.guide.Notice) > 0 {
		notice := r.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(t.Info).
			PaddingLeft(1).
			Render(renderRichText(m.guide.Notice, t, width-3))
		parts = append(parts, notice, "")
	}

	heading := r.NewStyle().Bold(true).Foreground(t.Accent(d)).
		Render(t.Icon(d) + " " + track.Heading)
	count := r.NewStyle().Foreground(t.Muted).
		Border(lipgloss.RoundedBorder(), false, true, false, true).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(m.guide.StepCountLabel(d))
	gap := width - lipgloss.Width(heading) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	parts = append(parts, heading+strings.Repeat(" ", gap)+count, "")

	parts = append(parts, m.renderer().Render(track.Steps, d, m.lookup), "")
	parts = append(parts, m.renderSummary(width))

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return r.NewStyle().Width(m.width).Align(lipgloss.Center).Render(compressBlankLines(body, 1))
}

func (m PageController) renderSummary(width int) string {
	t := m.theme
	r := t.Renderer

	colWidth := (width - 6) / 2
	stacked := colWidth < 30
	if stacked {
		colWidth = width - 4
	}

	var cols []string
	for _, d := range guide.Directions {
		s := m.guide.Track(d).Summary
		title := r.NewStyle().Bold(true).Foreground(t.Accent(d)).Render(t.Icon(d) + " " + s.Title)
		body := renderRichText(s.Items, t, colWidth)
		cols = append(cols, r.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
	}

	var inner string
	if stacked {
		inner = lipgloss.JoinVertical(lipgloss.Left, cols[0], "", cols[1])
	} else {
		inner = lipgloss.JoinHorizontal(lipgloss.Top, cols[0], "  ", cols[1])
	}

	heading := t.Bold.Render("⚙ " + m.guide.SummaryTitle)
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.SummaryPanel).
		Padding(0, 1).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, heading, "", inner))
}

// truncateStyled cuts a styled single line to width cells.
func truncateStyled(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
