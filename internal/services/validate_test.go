package services

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestStringList_UnmarshalArray(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`[" red ", "", "blue"]`), &l); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual([]string(l), []string{"red", "blue"}) {
		t.Errorf("got %v, expected [red blue]", l)
	}
}

func TestStringList_UnmarshalCommaString(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`"red, blue , "`), &l); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual([]string(l), []string{"red", "blue"}) {
		t.Errorf("got %v, expected [red blue]", l)
	}
}

func TestStringList_UnmarshalEmptyString(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`""`), &l); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(l) != 0 {
		t.Errorf("got %v, expected empty", l)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Poster Series":       "poster-series",
		"  Étude // No. 5  ":  "tude-no-5",
		"UPPER_case--mix":     "upper-case-mix",
		"---":                 "",
		"already-a-slug":      "already-a-slug",
		"trailing punctuati!": "trailing-punctuati",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Hero Shot (final).PNG": "Hero-Shot-final-.PNG",
		"model.glb":             "model.glb",
		"":                      "file",
		"../../etc/passwd":      "..-..-etc-passwd", // slashes must not survive
		"a - - b.png":           "a-b.png",          // dash runs squeeze
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestSanitizeFilename_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 200) + ".png"
	got := SanitizeFilename(long)
	if len(got) != 140 {
		t.Errorf("len(SanitizeFilename(long)) = %d, expected 140", len(got))
	}
}

func TestNormalizeMimeType(t *testing.T) {
	cases := []struct {
		filename string
		mimeType string
		want     string
	}{
		{"x.bin", "Image/JPEG", "image/jpeg"},
		{"x.bin", "image/png; charset=binary", "image/png"},
		{"x.bin", "  model/gltf-binary ", "model/gltf-binary"},
		// Off-list declared type falls back to the extension.
		{"model.glb", "application/x-binary", "model/gltf-binary"},
		{"scene.GLTF", "", "model/gltf+json"},
		{"Photo.JPG", "text/plain", "image/jpeg"},
		{"cover.webp", "", "image/webp"},
		{"notes.txt", "weird/thing", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := NormalizeMimeType(tc.filename, tc.mimeType); got != tc.want {
			t.Errorf("NormalizeMimeType(%q, %q) = %q, expected %q", tc.filename, tc.mimeType, got, tc.want)
		}
	}
}
