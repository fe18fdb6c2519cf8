package cambai

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// JobType identifies one of the job-based CambAI endpoints.
type JobType string

const (
	JobTextToSpeech JobType = "tts"
	JobTextToSound  JobType = "sound"
	JobTextToVoice  JobType = "voice"
	JobDubbing      JobType = "dub"
)

// JobTypes lists every known job type.
func JobTypes() []JobType {
	return []JobType{JobTextToSpeech, JobTextToSound, JobTextToVoice, JobDubbing}
}

// PollingRange is the accepted range and default of a polling parameter.
type PollingRange struct {
	Default  time.Duration
	Min, Max time.Duration
}

// PollingBounds holds the interval and timeout ranges of a job type.
type PollingBounds struct {
	Interval PollingRange
	Timeout  PollingRange
}

// jobSpec describes one job type. Everything that differs between job types
// lives here; the lifecycle code only looks specs up by JobType.
type jobSpec struct {
	// base is the resource segment: POST /{base}, GET /{base}/{task_id},
	// GET /{base}-result/{run_id}.
	base string

	// audio job types can return raw bytes and take the output_type query.
	// Raw payloads are named cambai_{file}_{task_id}.{ext}.
	audio    bool
	file     string
	mimeType string
	ext      string

	polling PollingBounds

	newRequest func() any
	build      func(req any) (any, error)
	extract    func(body []byte, res *Result) error
}

var jobSpecs = map[JobType]*jobSpec{
	JobTextToSpeech: {
		base:     "tts",
		audio:    true,
		file:     "tts",
		mimeType: "audio/flac",
		ext:      "flac",
		polling: PollingBounds{
			Interval: PollingRange{Default: 5 * time.Second, Min: time.Second, Max: 10 * time.Second},
			Timeout:  PollingRange{Default: 120 * time.Second, Min: 30 * time.Second, Max: 600 * time.Second},
		},
		newRequest: func() any { return &SpeechRequest{} },
		build:      buildSpeech,
		extract:    extractAudioURL,
	},
	JobTextToSound: {
		base:     "text-to-sound",
		audio:    true,
		file:     "sound",
		mimeType: "audio/flac",
		ext:      "flac",
		polling: PollingBounds{
			Interval: PollingRange{Default: 5 * time.Second, Min: time.Second, Max: 10 * time.Second},
			Timeout:  PollingRange{Default: 120 * time.Second, Min: 30 * time.Second, Max: 600 * time.Second},
		},
		newRequest: func() any { return &SoundRequest{} },
		build:      buildSound,
		extract:    extractAudioURL,
	},
	JobTextToVoice: {
		base: "text-to-voice",
		polling: PollingBounds{
			Interval: PollingRange{Default: 5 * time.Second, Min: time.Second, Max: 10 * time.Second},
			Timeout:  PollingRange{Default: 180 * time.Second, Min: 60 * time.Second, Max: 600 * time.Second},
		},
		newRequest: func() any { return &VoiceRequest{} },
		build:      buildVoice,
		extract:    extractPreviews,
	},
	JobDubbing: {
		base: "dub",
		polling: PollingBounds{
			Interval: PollingRange{Default: 10 * time.Second, Min: 5 * time.Second, Max: 30 * time.Second},
			Timeout:  PollingRange{Default: 600 * time.Second, Min: 300 * time.Second, Max: 1800 * time.Second},
		},
		newRequest: func() any { return &DubbingRequest{} },
		build:      buildDubbing,
		extract:    extractDubbing,
	},
}

func lookupJob(jt JobType) (*jobSpec, error) {
	spec, ok := jobSpecs[jt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, string(jt))
	}
	return spec, nil
}

// ParseJobType parses a job type name.
func ParseJobType(s string) (JobType, error) {
	jt := JobType(s)
	if _, err := lookupJob(jt); err != nil {
		return "", err
	}
	return jt, nil
}

// NewRequest returns a pointer to an empty request of the job type, ready to
// be decoded into.
func (jt JobType) NewRequest() (any, error) {
	spec, err := lookupJob(jt)
	if err != nil {
		return nil, err
	}
	return spec.newRequest(), nil
}

// Polling returns the polling bounds of the job type.
func (jt JobType) Polling() PollingBounds {
	if spec, ok := jobSpecs[jt]; ok {
		return spec.polling
	}
	return PollingBounds{}
}

// SupportsRawBytes reports whether the job type can return raw audio bytes.
func (jt JobType) SupportsRawBytes() bool {
	spec, ok := jobSpecs[jt]
	return ok && spec.audio
}

// DefaultOutput returns the output type used when none is requested.
func (jt JobType) DefaultOutput() OutputType {
	if jt.SupportsRawBytes() {
		return OutputRawBytes
	}
	return OutputFileURL
}

// CheckPolling validates interval and timeout against the job type's ranges.
// Zero values are accepted and mean "use the default".
func (jt JobType) CheckPolling(interval, timeout time.Duration) error {
	spec, err := lookupJob(jt)
	if err != nil {
		return err
	}
	check := func(name string, v time.Duration, r PollingRange) error {
		if v == 0 {
			return nil
		}
		if v < r.Min || v > r.Max {
			return fmt.Errorf("%w: %s %s %s outside [%s, %s]", ErrInvalidPolling, jt, name, v, r.Min, r.Max)
		}
		return nil
	}
	if err := check("interval", interval, spec.polling.Interval); err != nil {
		return err
	}
	return check("timeout", timeout, spec.polling.Timeout)
}

func (s *jobSpec) createPath() string {
	return "/" + s.base
}

func (s *jobSpec) statusPath(taskID ID) string {
	return "/" + s.base + "/" + url.PathEscape(taskID.String())
}

func (s *jobSpec) resultPath(runID ID) string {
	return "/" + s.base + "-result/" + url.PathEscape(runID.String())
}

func (s *jobSpec) filename(taskID ID) string {
	return fmt.Sprintf("cambai_%s_%s.%s", s.file, taskID, s.ext)
}

// ================== Request builders ==================

type speechBody struct {
	Text               string `json:"text"`
	VoiceID            int    `json:"voice_id"`
	Language           int    `json:"language"`
	Gender             Gender `json:"gender,omitempty"`
	Age                int    `json:"age,omitempty"`
	ProjectName        string `json:"project_name,omitempty"`
	ProjectDescription string `json:"project_description,omitempty"`
}

func buildSpeech(req any) (any, error) {
	r, err := requestAs[SpeechRequest](req)
	if err != nil {
		return nil, err
	}
	voice, err := r.VoiceID.Int()
	if err != nil {
		return nil, fmt.Errorf("voice_id: %w", err)
	}
	lang, err := r.Language.Int()
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}
	return &speechBody{
		Text:               r.Text,
		VoiceID:            voice,
		Language:           lang,
		Gender:             r.Gender,
		Age:                r.Age,
		ProjectName:        r.ProjectName,
		ProjectDescription: r.ProjectDescription,
	}, nil
}

func buildSound(req any) (any, error) {
	r, err := requestAs[SoundRequest](req)
	if err != nil {
		return nil, err
	}
	return &struct {
		Prompt   string  `json:"prompt"`
		Duration float64 `json:"duration"`
	}{r.Prompt, r.Duration}, nil
}

func buildVoice(req any) (any, error) {
	r, err := requestAs[VoiceRequest](req)
	if err != nil {
		return nil, err
	}
	return &struct {
		Text             string `json:"text"`
		VoiceDescription string `json:"voice_description"`
	}{r.Text, r.VoiceDescription}, nil
}

type dubbingBody struct {
	VideoURL        string `json:"video_url"`
	SourceLanguage  int    `json:"source_language"`
	TargetLanguages []int  `json:"target_languages,omitempty"`
}

func buildDubbing(req any) (any, error) {
	r, err := requestAs[DubbingRequest](req)
	if err != nil {
		return nil, err
	}
	src, err := r.SourceLanguage.Int()
	if err != nil {
		return nil, fmt.Errorf("source_language: %w", err)
	}
	body := &dubbingBody{
		VideoURL:       r.VideoURL,
		SourceLanguage: src,
	}
	for i, l := range r.TargetLanguages {
		if l.IsZero() {
			continue
		}
		n, err := l.Int()
		if err != nil {
			return nil, fmt.Errorf("target_languages[%d]: %w", i, err)
		}
		body.TargetLanguages = append(body.TargetLanguages, n)
	}
	return body, nil
}

// requestAs accepts both T and *T.
func requestAs[T any](req any) (*T, error) {
	switch r := req.(type) {
	case *T:
		if r == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidRequest, req)
		}
		return r, nil
	case T:
		return &r, nil
	default:
		var want T
		return nil, fmt.Errorf("%w: got %T, want %T", ErrInvalidRequest, req, want)
	}
}

// ================== Result extractors ==================

func extractAudioURL(body []byte, res *Result) error {
	var resp struct {
		OutputURL string `json:"output_url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", res.JobType, err)
	}
	res.AudioURL = resp.OutputURL
	res.Artifact = &Artifact{Kind: ArtifactURL, Reference: resp.OutputURL}
	return nil
}

func extractPreviews(body []byte, res *Result) error {
	var resp struct {
		Previews []any `json:"previews"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", res.JobType, err)
	}
	res.Previews = resp.Previews
	res.PreviewCount = len(resp.Previews)
	return nil
}

func extractDubbing(body []byte, res *Result) error {
	var resp struct {
		VideoURL   string `json:"video_url"`
		AudioURL   string `json:"audio_url"`
		Transcript any    `json:"transcript"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", res.JobType, err)
	}
	res.OutputVideoURL = resp.VideoURL
	res.OutputAudioURL = resp.AudioURL
	res.Transcript = resp.Transcript
	switch t := resp.Transcript.(type) {
	case []any:
		res.TranscriptLength = len(t)
	case string:
		res.TranscriptLength = len(t)
	}
	return nil
}
