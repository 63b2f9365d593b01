package export

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

func testGuide(t *testing.T) *guide.Guide {
	t.Helper()
	g, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return g
}

// testStore resolves every default image except 매수4.png.
func testStore(t *testing.T, g *guide.Guide) *assets.Store {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 200))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	fsys := fstest.MapFS{}
	for _, ref := range g.ImageRefs() {
		if ref != "매수4.png" {
			fsys[ref] = &fstest.MapFile{Data: buf.Bytes()}
		}
	}
	return assets.NewStore(assets.FSResolver{FS: fsys})
}
