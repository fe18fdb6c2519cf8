package cambai

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`12345`, "12345"},
		{`null`, ""},
		{`""`, ""},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Error("Unmarshal(object) should fail")
	}
}

func TestLocator(t *testing.T) {
	var req DubbingRequest
	data := `{"video_url":"v","source_language":1,"target_languages":["5",7]}`
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if req.SourceLanguage != "1" {
		t.Errorf("SourceLanguage = %q", req.SourceLanguage)
	}
	if len(req.TargetLanguages) != 2 || req.TargetLanguages[0] != "5" || req.TargetLanguages[1] != "7" {
		t.Errorf("TargetLanguages = %v", req.TargetLanguages)
	}

	if n, err := Locator(" 42 ").Int(); err != nil || n != 42 {
		t.Errorf("Int() = %d, %v", n, err)
	}
	if _, err := Locator("en").Int(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Int(en) err = %v, want ErrInvalidRequest", err)
	}
	if !Locator("  ").IsZero() || LocatorOf(3).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	terminal := []TaskStatus{TaskStatusSuccess, TaskStatusError, TaskStatusTimeout, TaskStatusPaymentRequired}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = false", s)
		}
	}
	for _, s := range []TaskStatus{TaskStatusPending, "", "IN_PROGRESS", "success"} {
		if s.IsTerminal() {
			t.Errorf("%q.IsTerminal() = true", s)
		}
	}
}

func TestJobSpecs(t *testing.T) {
	tests := []struct {
		jt      JobType
		create  string
		status  string
		result  string
		raw     bool
		output  OutputType
		file    string
		defInt  time.Duration
		defWait time.Duration
	}{
		{JobTextToSpeech, "/tts", "/tts/t1", "/tts-result/r1", true, OutputRawBytes, "cambai_tts_t1.flac", 5 * time.Second, 120 * time.Second},
		{JobTextToSound, "/text-to-sound", "/text-to-sound/t1", "/text-to-sound-result/r1", true, OutputRawBytes, "cambai_sound_t1.flac", 5 * time.Second, 120 * time.Second},
		{JobTextToVoice, "/text-to-voice", "/text-to-voice/t1", "/text-to-voice-result/r1", false, OutputFileURL, "", 5 * time.Second, 180 * time.Second},
		{JobDubbing, "/dub", "/dub/t1", "/dub-result/r1", false, OutputFileURL, "", 10 * time.Second, 600 * time.Second},
	}
	for _, tt := range tests {
		t.Run(string(tt.jt), func(t *testing.T) {
			spec, err := lookupJob(tt.jt)
			if err != nil {
				t.Fatal(err)
			}
			if got := spec.createPath(); got != tt.create {
				t.Errorf("createPath = %q, want %q", got, tt.create)
			}
			if got := spec.statusPath("t1"); got != tt.status {
				t.Errorf("statusPath = %q, want %q", got, tt.status)
			}
			if got := spec.resultPath("r1"); got != tt.result {
				t.Errorf("resultPath = %q, want %q", got, tt.result)
			}
			if tt.jt.SupportsRawBytes() != tt.raw {
				t.Errorf("SupportsRawBytes = %v", !tt.raw)
			}
			if got := tt.jt.DefaultOutput(); got != tt.output {
				t.Errorf("DefaultOutput = %q, want %q", got, tt.output)
			}
			if tt.raw {
				if got := spec.filename("t1"); got != tt.file {
					t.Errorf("filename = %q, want %q", got, tt.file)
				}
			}
			p := tt.jt.Polling()
			if p.Interval.Default != tt.defInt || p.Timeout.Default != tt.defWait {
				t.Errorf("Polling defaults = %s/%s", p.Interval.Default, p.Timeout.Default)
			}
		})
	}
}

func TestStatusPathEscapes(t *testing.T) {
	spec, _ := lookupJob(JobDubbing)
	if got := spec.statusPath("a/b c"); got != "/dub/a%2Fb%20c" {
		t.Errorf("statusPath = %q", got)
	}
}

func TestParseJobType(t *testing.T) {
	for _, jt := range JobTypes() {
		got, err := ParseJobType(string(jt))
		if err != nil || got != jt {
			t.Errorf("ParseJobType(%q) = %q, %v", jt, got, err)
		}
	}
	if _, err := ParseJobType("music"); !errors.Is(err, ErrUnknownJobType) {
		t.Errorf("ParseJobType(music) err = %v", err)
	}
	if p := JobType("music").Polling(); p != (PollingBounds{}) {
		t.Errorf("Polling(music) = %+v", p)
	}
}

func TestCheckPolling(t *testing.T) {
	tests := []struct {
		jt                JobType
		interval, timeout time.Duration
		ok                bool
	}{
		{JobTextToSpeech, 0, 0, true},
		{JobTextToSpeech, time.Second, 30 * time.Second, true},
		{JobTextToSpeech, 10 * time.Second, 600 * time.Second, true},
		{JobTextToSpeech, 500 * time.Millisecond, 0, false},
		{JobTextToSpeech, 0, 601 * time.Second, false},
		{JobTextToVoice, 0, 30 * time.Second, false},
		{JobTextToVoice, 0, 60 * time.Second, true},
		{JobDubbing, 2 * time.Second, 0, false},
		{JobDubbing, 30 * time.Second, 1800 * time.Second, true},
		{JobDubbing, 0, 200 * time.Second, false},
	}
	for _, tt := range tests {
		err := tt.jt.CheckPolling(tt.interval, tt.timeout)
		if tt.ok && err != nil {
			t.Errorf("%s CheckPolling(%s, %s) = %v", tt.jt, tt.interval, tt.timeout, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidPolling) {
			t.Errorf("%s CheckPolling(%s, %s) = %v, want ErrInvalidPolling", tt.jt, tt.interval, tt.timeout, err)
		}
	}
}

func TestResolveOutput(t *testing.T) {
	tts, _ := lookupJob(JobTextToSpeech)
	dub, _ := lookupJob(JobDubbing)

	if got, _ := resolveOutput(JobTextToSpeech, tts, ""); got != OutputRawBytes {
		t.Errorf("tts default = %q", got)
	}
	if got, _ := resolveOutput(JobDubbing, dub, ""); got != OutputFileURL {
		t.Errorf("dub default = %q", got)
	}
	if _, err := resolveOutput(JobDubbing, dub, OutputRawBytes); !errors.Is(err, ErrBinaryUnsupported) {
		t.Errorf("dub raw err = %v", err)
	}
	if _, err := resolveOutput(JobTextToSpeech, tts, "wav"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("unknown output err = %v", err)
	}
}

func TestBuildSpeech(t *testing.T) {
	body, err := buildSpeech(SpeechRequest{
		Text:        "Hi",
		VoiceID:     "20303",
		Language:    LocatorOf(1),
		Gender:      GenderMale,
		ProjectName: "demo",
	})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(body)
	want := `{"text":"Hi","voice_id":20303,"language":1,"gender":1,"project_name":"demo"}`
	if string(data) != want {
		t.Errorf("body = %s, want %s", data, want)
	}

	if _, err := buildSpeech((*SpeechRequest)(nil)); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("nil request err = %v", err)
	}
}

func TestBuildDubbing(t *testing.T) {
	body, err := buildDubbing(&DubbingRequest{
		VideoURL:        "https://example.com/v.mp4",
		SourceLanguage:  "1",
		TargetLanguages: []Locator{"5", "", "7"},
	})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(body)
	want := `{"video_url":"https://example.com/v.mp4","source_language":1,"target_languages":[5,7]}`
	if string(data) != want {
		t.Errorf("body = %s, want %s", data, want)
	}

	_, err = buildDubbing(&DubbingRequest{SourceLanguage: "1", TargetLanguages: []Locator{"fr"}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("bad target err = %v", err)
	}
}

func TestExtractors(t *testing.T) {
	res := &Result{JobType: JobTextToVoice}
	if err := extractPreviews([]byte(`{}`), res); err != nil {
		t.Fatal(err)
	}
	if res.PreviewCount != 0 || res.Previews != nil {
		t.Errorf("empty previews = %+v", res)
	}

	res = &Result{JobType: JobDubbing}
	if err := extractDubbing([]byte(`{"video_url":"v"}`), res); err != nil {
		t.Fatal(err)
	}
	if res.OutputVideoURL != "v" || res.TranscriptLength != 0 || res.Transcript != nil {
		t.Errorf("dubbing = %+v", res)
	}

	res = &Result{JobType: JobTextToSpeech}
	if err := extractAudioURL([]byte(`not json`), res); err == nil {
		t.Error("extractAudioURL(not json) should fail")
	}
}

func TestJobErrorMessage(t *testing.T) {
	err := &JobError{
		JobType: JobDubbing,
		TaskID:  "t1",
		Status:  TaskStatusPaymentRequired,
		Err:     ErrInsufficientCredits,
	}
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Error("errors.Is failed")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		status                         int
		unauth, payment, limit, server bool
	}{
		{401, true, false, false, false},
		{403, true, false, false, false},
		{402, false, true, false, false},
		{429, false, false, true, false},
		{500, false, false, false, true},
		{503, false, false, false, true},
		{400, false, false, false, false},
	}
	for _, tt := range tests {
		e := &Error{HTTPStatus: tt.status}
		if e.IsUnauthorized() != tt.unauth || e.IsPaymentRequired() != tt.payment ||
			e.IsRateLimit() != tt.limit || e.IsServerError() != tt.server {
			t.Errorf("predicates for %d mismatch", tt.status)
		}
	}
}
