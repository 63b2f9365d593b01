package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/config"
	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/version"
)

// isolate points config lookup and every ALERTGUIDE_* variable at nothing so
// the developer's own setup cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"ALERTGUIDE_THEME", "ALERTGUIDE_DIRECTION", "ALERTGUIDE_SCROLL_THRESHOLD",
		"ALERTGUIDE_ASSETS_DIR", "ALERTGUIDE_CONTENT", "ALERTGUIDE_LIVE_RELOAD",
	} {
		t.Setenv(name, "")
	}
}

// assetsDir writes every default screenshot except the skipped ones.
func assetsDir(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 40, 30))))

	g, err := content.Default()
	require.NoError(t, err)
	skipped := make(map[string]bool)
	for _, s := range skip {
		skipped[s] = true
	}
	for _, ref := range g.ImageRefs() {
		if skipped[ref] {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, ref), buf.Bytes(), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "alertguide "+version.Version+"\n", out)
}

func TestExportJSON(t *testing.T) {
	isolate(t)
	dir := assetsDir(t, "매수4.png")

	out, _, err := run(t, "export", "--format", "json", "--assets", dir)
	require.NoError(t, err)

	var doc struct {
		Title  string `json:"title"`
		Tracks []struct {
			Direction string `json:"direction"`
			Steps     []struct {
				Image     string `json:"image"`
				ImageInfo struct {
					Status string `json:"status"`
				} `json:"image_info"`
			} `json:"steps"`
		} `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Tracks, 2)
	assert.Equal(t, "buy", doc.Tracks[0].Direction)
	assert.Equal(t, "sell", doc.Tracks[1].Direction)
	assert.Equal(t, "매수4.png", doc.Tracks[0].Steps[3].Image)
	assert.Equal(t, "failed", doc.Tracks[0].Steps[3].ImageInfo.Status)
	assert.Equal(t, "loaded", doc.Tracks[0].Steps[0].ImageInfo.Status)
}

func TestExportMarkdownToFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "guide.md")

	_, stderr, err := run(t, "export", "-f", "md", "-o", path, "--no-images")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# "))
	assert.Contains(t, string(data), "](매수4.png)")
}

func TestExportHTML(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "export", "--format", "html", "--assets", assetsDir(t, "매도2.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestExportUnknownFormat(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "export", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}

func TestCheckAllPresent(t *testing.T) {
	isolate(t)
	dir := assetsDir(t)

	out, _, err := run(t, "check", "--assets", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All 10 images found")
	assert.NotContains(t, out, "FAIL")
}

func TestCheckReportsMissing(t *testing.T) {
	isolate(t)
	dir := assetsDir(t, "매수4.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "매도1.png"), []byte("not an image"), 0o644))

	out, _, err := run(t, "check", "--assets", dir)
	require.ErrorIs(t, err, errMissingImages)
	assert.Contains(t, out, "매수4.png")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "not a supported image")
	assert.Contains(t, out, "2 of 10 images missing")
}

func TestCheckStats(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "check", "--assets", assetsDir(t), "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "image_cache")
	assert.Contains(t, out, "misses=")
}

func TestCheckOnlyDirection(t *testing.T) {
	isolate(t)
	dir := assetsDir(t, "매수4.png")

	out, _, err := run(t, "check", "--assets", dir, "--only", "sell")
	require.NoError(t, err)
	assert.Contains(t, out, "All 5 images found")

	_, _, err = run(t, "check", "--assets", dir, "--only", "sideways")
	require.Error(t, err)
}

func TestPrintRaw(t *testing.T) {
	isolate(t)
	g, err := content.Default()
	require.NoError(t, err)

	out, _, err := run(t, "print", "--direction", "sell", "--raw", "--assets", assetsDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, g.Sell.Heading)
	assert.NotContains(t, out, g.Buy.Heading)
}

func TestPrintRendered(t *testing.T) {
	isolate(t)
	g, err := content.Default()
	require.NoError(t, err)

	out, _, err := run(t, "print", "-d", "buy", "-w", "60", "--assets", assetsDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, g.Buy.Steps.At(0).Title)
	assert.Contains(t, out, g.Buy.Heading)
}

func TestResolvePrecedence(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  theme: dark\n  default_direction: sell\n  scroll_threshold: 5\n"), 0o644))

	// File only.
	s, err := (&rootOptions{configPath: cfgPath}).resolve()
	require.NoError(t, err)
	assert.Equal(t, "dark", s.cfg.UI.Theme)
	assert.Equal(t, guide.Sell, s.direction)
	assert.Equal(t, 5, s.cfg.UI.ScrollThreshold)

	// Env beats file.
	t.Setenv("ALERTGUIDE_DIRECTION", "buy")
	s, err = (&rootOptions{configPath: cfgPath}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guide.Buy, s.direction)

	// Flags beat env.
	s, err = (&rootOptions{configPath: cfgPath, direction: "long-exit", theme: "classic"}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guide.Sell, s.direction)
	assert.Equal(t, "classic", s.cfg.UI.Theme)
}

func TestResolveErrors(t *testing.T) {
	isolate(t)

	_, err := (&rootOptions{direction: "sideways"}).resolve()
	assert.Error(t, err)

	_, err = (&rootOptions{content: filepath.Join(t.TempDir(), "missing.yaml")}).resolve()
	assert.Error(t, err)

	t.Setenv("ALERTGUIDE_SCROLL_THRESHOLD", "lots")
	_, err = (&rootOptions{}).resolve()
	assert.Error(t, err)
}

func TestResolveCustomContent(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "guide.yaml")
	data := bytes.Replace(content.DefaultYAML(), []byte("자동매매 알림 설정 가이드"), []byte("Custom Guide"), 1)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := (&rootOptions{content: path}).resolve()
	require.NoError(t, err)
	assert.Equal(t, "Custom Guide", s.guide.Title)
	assert.True(t, s.cfg.LiveReloadEnabled())
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&assets.LoadError{Ref: "a.png", Err: assets.ErrNotFound}, "not found"},
		{&assets.LoadError{Ref: "a.png", Err: assets.ErrUndecodable}, "not a supported image"},
		{&assets.LoadError{Ref: "../a.png", Err: assets.ErrInvalidRef}, "invalid reference"},
		{errors.New("disk on fire"), "disk on fire"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, failureReason(tt.err))
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose(t *testing.T) {
	diskFull := errors.New("disk full")
	writeFailed := errors.New("write failed")

	tests := []struct {
		name     string
		writeErr error
		closeErr error
		want     error
	}{
		{"ok", nil, nil, nil},
		{"close error surfaces", nil, diskFull, diskFull},
		{"write error wins", writeFailed, diskFull, writeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc := &closeRecorder{closeErr: tt.closeErr}
			err := writeAndClose(wc, func(w io.Writer) error {
				_, _ = io.WriteString(w, "guide")
				return tt.writeErr
			})
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.True(t, wc.closed, "writer should be closed")
			assert.Equal(t, "guide", wc.String())
		})
	}
}

func TestResolveDirectionSet(t *testing.T) {
	isolate(t)

	s, err := (&rootOptions{}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guide.Buy, s.direction)
	assert.False(t, s.directionSet, "defaults should leave the direction open")

	s, err = (&rootOptions{direction: "buy"}).resolve()
	require.NoError(t, err)
	assert.True(t, s.directionSet, "flag")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  default_direction: buy\n"), 0o644))
	s, err = (&rootOptions{configPath: cfgPath}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guide.Buy, s.direction)
	assert.True(t, s.directionSet, "config file")

	t.Setenv("ALERTGUIDE_DIRECTION", "sell")
	s, err = (&rootOptions{}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guide.Sell, s.direction)
	assert.True(t, s.directionSet, "env")
}

func TestInitWritesGuideAndConfig(t *testing.T) {
	isolate(t)
	guidePath := filepath.Join(t.TempDir(), "guides", "alerts.yaml")
	imgDir := t.TempDir()

	_, stderr, err := run(t, "init", guidePath, "--assets", imgDir, "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote "+guidePath)
	assert.Contains(t, stderr, "Wrote "+config.ConfigPath())

	data, err := os.ReadFile(guidePath)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultYAML(), data)

	// With no flags the starter config now drives resolve.
	s, err := (&rootOptions{}).resolve()
	require.NoError(t, err)
	assert.Equal(t, guidePath, s.cfg.Content.Path)
	assert.Equal(t, imgDir, s.cfg.Assets.Dir)
	assert.Equal(t, "dark", s.cfg.UI.Theme)
	assert.False(t, s.directionSet)
	assert.True(t, s.cfg.LiveReloadEnabled())

	def, err := content.Default()
	require.NoError(t, err)
	assert.Equal(t, def.Title, s.guide.Title)
}

func TestInitKeepsExistingFiles(t *testing.T) {
	isolate(t)
	guidePath := filepath.Join(t.TempDir(), "alerts.yaml")
	require.NoError(t, os.WriteFile(guidePath, []byte("mine"), 0o644))

	_, _, err := run(t, "init", guidePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(guidePath)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	_, _, err = run(t, "init", guidePath, "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(guidePath)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultYAML(), data)
}

func TestInitCustomConfigPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	guidePath := filepath.Join(dir, "alerts.yaml")
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	_, _, err := run(t, "init", guidePath, "--config", cfgPath, "--direction", "long-exit")
	require.NoError(t, err)

	cfg, err := config.LoadFrom(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, guidePath, cfg.Content.Path)
	assert.Equal(t, "sell", cfg.UI.DefaultDirection)

	_, err = os.Stat(config.ConfigPath())
	assert.True(t, errors.Is(err, os.ErrNotExist), "XDG config should be untouched")
}
