package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haivivi/cambai/pkg/cambai"
)

func TestLoadRequest_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dub.yaml")
	data := "video_url: https://example.com/v.mp4\nsource_language: 1\ntarget_languages: [5, \"7\"]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var req cambai.DubbingRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest: %v", err)
	}
	if req.VideoURL != "https://example.com/v.mp4" || req.SourceLanguage != "1" {
		t.Errorf("req = %+v", req)
	}
	if len(req.TargetLanguages) != 2 || req.TargetLanguages[0] != "5" || req.TargetLanguages[1] != "7" {
		t.Errorf("TargetLanguages = %v", req.TargetLanguages)
	}
}

func TestLoadRequest_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tts.json")
	data := `{"text":"Hello","voice_id":20303,"language":"1","gender":2}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var req cambai.SpeechRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest: %v", err)
	}
	if req.VoiceID != "20303" || req.Language != "1" || req.Gender != cambai.GenderFemale {
		t.Errorf("req = %+v", req)
	}
}

func TestLoadRequest_Missing(t *testing.T) {
	var req cambai.SoundRequest
	if err := LoadRequest(filepath.Join(t.TempDir(), "nope.yaml"), &req); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseRequest_Unknown(t *testing.T) {
	var req cambai.SoundRequest
	if err := ParseRequest([]byte("prompt: rain\nduration: 3\n"), "req.txt", &req); err != nil {
		t.Fatal(err)
	}
	if req.Prompt != "rain" || req.Duration != 3 {
		t.Errorf("req = %+v", req)
	}
	if err := ParseRequest([]byte("{{{"), "req.txt", &req); err == nil {
		t.Error("garbage should fail")
	}
}

func TestLoadRequestFromReader(t *testing.T) {
	var req cambai.VoiceRequest
	if err := LoadRequestFromReader(strings.NewReader(`{"text":"hi","voice_description":"calm"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Text != "hi" || req.VoiceDescription != "calm" {
		t.Errorf("req = %+v", req)
	}
}
