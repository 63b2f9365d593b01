package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/alertguide/pkg/guide"
)

func TestDefaultGuide(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, "자동매매 알림 설정 가이드", g.Title)
	assert.Equal(t, 5, g.Sequence(guide.Buy).Len())
	assert.Equal(t, 5, g.Sequence(guide.Sell).Len())
	assert.Equal(t, "총 5단계", g.StepCountLabel(guide.Buy))

	for i, st := range g.Sequence(guide.Buy).Steps() {
		assert.Equal(t, i+1, st.Ordinal)
		assert.NotEmpty(t, st.Title)
		assert.NotEmpty(t, st.Description)
	}
	assert.Equal(t, "매수4.png", g.Sequence(guide.Buy).At(3).ImageRef)
	assert.Equal(t, "매도1.png", g.Sequence(guide.Sell).At(0).ImageRef)
	assert.Equal(t, "이미지 로드 실패", g.Fallback.Failed)
}

func TestDefaultGuideDescriptions(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	first := g.Sequence(guide.Buy).At(0).Description
	require.Len(t, first, 2)
	assert.Equal(t, guide.KindParagraph, first[0].Kind())
	list, ok := first[1].(guide.List)
	require.True(t, ok, "second block should be a list")
	require.Len(t, list.Items, 2)
	emph, ok := list.Items[0][0].(guide.Emphasis)
	require.True(t, ok, "first list item should open with emphasis")
	assert.Equal(t, "조건", guide.InlineText(emph.Children))
}

func TestParseRejectsEmptyTrack(t *testing.T) {
	_, err := Parse([]byte("title: x\nbuy:\n  steps: []\nsell:\n  steps:\n    - title: a\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, guide.ErrEmptySequence)
}

func TestParseRejectsBadBlocks(t *testing.T) {
	doc := `
buy:
  steps:
    - title: a
      description:
        - {}
sell:
  steps:
    - title: b
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyBlock))

	doc = `
buy:
  steps:
    - title: a
      description:
        - p: x
          list: [y]
sell:
  steps:
    - title: b
`
	_, err = Parse([]byte(doc))
	assert.Error(t, err)
}

func TestParseFallbackDefaults(t *testing.T) {
	g, err := Parse([]byte("buy:\n  steps:\n    - title: a\nsell:\n  steps:\n    - title: b\n"))
	require.NoError(t, err)
	assert.Equal(t, "image failed to load", g.Fallback.Failed)
	assert.Equal(t, 1, g.Sequence(guide.Sell).Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.yaml")
	require.NoError(t, os.WriteFile(path, DefaultYAML(), 0o644))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, len(g.ImageRefs()))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	g, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "TradingView Alert Setup Tutorial", g.Subtitle)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("buy: [unclosed"))
	assert.Error(t, err)
}
