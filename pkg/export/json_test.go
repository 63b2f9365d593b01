package export

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/version"
)

func TestBuildDocument(t *testing.T) {
	g := testGuide(t)
	doc := BuildDocument(g, nil)

	if doc.Version != version.Version {
		t.Errorf("Version = %q", doc.Version)
	}
	if len(doc.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(doc.Tracks))
	}
	if doc.Tracks[0].Direction != guide.Buy || doc.Tracks[1].Direction != guide.Sell {
		t.Errorf("track order = %v, %v", doc.Tracks[0].Direction, doc.Tracks[1].Direction)
	}
	for _, td := range doc.Tracks {
		if td.StepCount != len(td.Steps) {
			t.Errorf("%v: StepCount %d, steps %d", td.Direction, td.StepCount, len(td.Steps))
		}
		for i, s := range td.Steps {
			if s.Ordinal != i+1 {
				t.Errorf("%v step %d: ordinal %d", td.Direction, i, s.Ordinal)
			}
			if s.ImageInfo != nil {
				t.Errorf("%v step %d: image info without a store", td.Direction, i)
			}
		}
		if len(td.Summary.Items) == 0 {
			t.Errorf("%v: empty summary", td.Direction)
		}
	}
}

func TestBuildDocumentWithStore(t *testing.T) {
	g := testGuide(t)
	doc := BuildDocument(g, testStore(t, g))

	for _, td := range doc.Tracks {
		for _, s := range td.Steps {
			if s.ImageInfo == nil {
				t.Fatalf("%s: missing image info", s.Image)
			}
			if s.Image == "매수4.png" {
				if s.ImageInfo.Status != "failed" || s.ImageInfo.Error == "" {
					t.Errorf("매수4.png info = %+v, want failed with error", s.ImageInfo)
				}
				continue
			}
			if s.ImageInfo.Status != "loaded" || s.ImageInfo.Width != 320 || s.ImageInfo.Height != 200 {
				t.Errorf("%s info = %+v", s.Image, s.ImageInfo)
			}
		}
	}
}

func TestWriteJSON(t *testing.T) {
	g := testGuide(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	tracks, ok := raw["tracks"].([]any)
	if !ok || len(tracks) != 2 {
		t.Fatalf("tracks = %v", raw["tracks"])
	}
	first := tracks[0].(map[string]any)
	if first["direction"] != "buy" {
		t.Errorf("direction = %v, want \"buy\"", first["direction"])
	}
	if bytes.Contains(buf.Bytes(), []byte(`<`)) {
		t.Error("HTML escaping should be off")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"title": "`+g.Title+`"`)) {
		t.Error("output should be indented and carry the title verbatim")
	}
}
