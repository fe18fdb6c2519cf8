package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	loc, err := sink.Put(ctx, "tts/cambai_tts_abc.flac", "audio/flac", strings.NewReader("fLaC"))
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "tts", "cambai_tts_abc.flac")
	if loc != want {
		t.Errorf("location = %q, want %q", loc, want)
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fLaC" {
		t.Errorf("data = %q", data)
	}

	// Overwrite replaces the file and leaves no temp files behind.
	if _, err := sink.Put(ctx, "tts/cambai_tts_abc.flac", "", strings.NewReader("v2")); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(loc)
	if string(data) != "v2" {
		t.Errorf("after overwrite = %q", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(loc))
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestLocalExists(t *testing.T) {
	sink, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	ok, err := sink.Exists(ctx, "a.flac")
	if err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v", ok, err)
	}
	sink.Put(ctx, "a.flac", "", strings.NewReader("a"))
	ok, err = sink.Exists(ctx, "a.flac")
	if err != nil || !ok {
		t.Errorf("Exists(stored) = %v, %v", ok, err)
	}
}

func TestLocalRejectsEscapingNames(t *testing.T) {
	sink, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../x.flac", "a/../../x.flac", "", "."} {
		if _, err := sink.Put(context.Background(), name, "", strings.NewReader("x")); err == nil {
			t.Errorf("Put(%q) should fail", name)
		}
	}
}

func TestNewLocalCreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	sink, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(sink.Root()); err != nil || !fi.IsDir() {
		t.Errorf("root not created: %v", err)
	}
}
