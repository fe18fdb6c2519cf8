package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	TaskID   string `json:"taskId"`
	AudioURL string `json:"audioUrl,omitempty"`
	Count    int    `json:"previewCount"`
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := Output(sample{TaskID: "abc", Count: 2}, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if result["taskId"] != "abc" {
		t.Errorf("taskId = %v, want %q", result["taskId"], "abc")
	}
}

func TestOutput_YAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer

	err := Output(sample{TaskID: "abc", AudioURL: "cdn.example.com/a.flac"}, OutputOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"taskId: abc", "audioUrl: cdn.example.com/a.flac"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q, got: %s", want, out)
		}
	}
}

func TestOutput_Raw(t *testing.T) {
	var buf bytes.Buffer
	if err := Output([]byte("raw binary data"), OutputOptions{Format: FormatRaw, Writer: &buf}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "raw binary data" {
		t.Errorf("bytes = %q", buf.String())
	}

	buf.Reset()
	if err := Output("https://x/a.flac", OutputOptions{Format: FormatRaw, Writer: &buf}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "https://x/a.flac\n" {
		t.Errorf("string = %q", buf.String())
	}

	buf.Reset()
	if err := Output(map[string]int{"count": 42}, OutputOptions{Format: FormatRaw, Writer: &buf}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "count: 42") {
		t.Errorf("raw fallback should be YAML, got: %s", buf.String())
	}
}

func TestOutput_Query(t *testing.T) {
	var buf bytes.Buffer

	err := Output(sample{TaskID: "abc", AudioURL: "https://x/a.flac"}, OutputOptions{
		Format: FormatRaw,
		Query:  ".audioUrl",
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if buf.String() != "https://x/a.flac\n" {
		t.Errorf("Output = %q", buf.String())
	}
}

func TestApplyQuery(t *testing.T) {
	items := []sample{{TaskID: "a", Count: 1}, {TaskID: "b", Count: 3}}

	got, err := ApplyQuery(items, ".[] | select(.previewCount > 2) | .taskId")
	if err != nil {
		t.Fatal(err)
	}
	if got != "b" {
		t.Errorf("single result = %v, want b", got)
	}

	got, err = ApplyQuery(items, ".[].taskId")
	if err != nil {
		t.Fatal(err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("multi result = %#v", got)
	}

	got, err = ApplyQuery(items, "empty")
	if err != nil || got != nil {
		t.Errorf("empty = %v, %v", got, err)
	}

	if _, err := ApplyQuery(items, ".[ | "); err == nil {
		t.Error("invalid expression should fail")
	}
	if _, err := ApplyQuery(items, `error("boom")`); err == nil {
		t.Error("runtime error should be returned")
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Output("data", OutputOptions{Format: "table", Writer: &buf}); err == nil {
		t.Error("Output should fail for unsupported format")
	}
}

func TestOutput_ToFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "output.json")

	if err := Output(map[string]string{"key": "value"}, OutputOptions{Format: FormatJSON, File: filePath}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Invalid JSON in file: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestOutputBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flac")
	if err := OutputBytes([]byte("fLaC"), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "fLaC" {
		t.Errorf("data = %q", data)
	}
	if err := OutputBytes([]byte("x"), ""); err == nil {
		t.Error("empty path should fail")
	}
}
