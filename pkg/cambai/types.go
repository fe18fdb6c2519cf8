package cambai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is an opaque identifier assigned by the server (task_id, run_id).
// CambAI returns some identifiers as strings and others as numbers; ID
// accepts both and always holds the decimal/string form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return fmt.Errorf("cambai: cannot unmarshal %s into ID", string(data))
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// Locator references a catalog entry (voice, language) by its numeric id.
// It may be given as a number or as a numeric string; request builders
// coerce it to an integer.
type Locator string

// LocatorOf returns the Locator for a numeric id.
func LocatorOf(id int) Locator {
	return Locator(strconv.Itoa(id))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Locator) UnmarshalJSON(data []byte) error {
	var id ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*l = Locator(id)
	return nil
}

// Int returns the numeric value of the locator.
func (l Locator) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(l)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a numeric id", ErrInvalidRequest, string(l))
	}
	return n, nil
}

// IsZero reports whether the locator is unset.
func (l Locator) IsZero() bool {
	return strings.TrimSpace(string(l)) == ""
}

// TaskStatus is the status reported by a status check.
type TaskStatus string

const (
	TaskStatusPending         TaskStatus = "PENDING"
	TaskStatusSuccess         TaskStatus = "SUCCESS"
	TaskStatusError           TaskStatus = "ERROR"
	TaskStatusTimeout         TaskStatus = "TIMEOUT"
	TaskStatusPaymentRequired TaskStatus = "PAYMENT_REQUIRED"
)

// IsTerminal reports whether no further transition can follow s.
// Any status outside the known terminal set is treated as still running.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSuccess, TaskStatusError, TaskStatusTimeout, TaskStatusPaymentRequired:
		return true
	default:
		return false
	}
}

// OutputType selects how the result of an audio job is retrieved.
type OutputType string

const (
	// OutputRawBytes downloads the encoded audio.
	OutputRawBytes OutputType = "raw_bytes"

	// OutputFileURL returns a downloadable URL.
	OutputFileURL OutputType = "file_url"
)

// ArtifactKind tells which representation an Artifact holds.
type ArtifactKind string

const (
	ArtifactURL    ArtifactKind = "url"
	ArtifactBinary ArtifactKind = "binary"
)

// Artifact is the product of a successful audio job.
type Artifact struct {
	Kind ArtifactKind `json:"kind"`

	// Reference is the URL of an ArtifactURL. Callers that store the data
	// of an ArtifactBinary may record the stored location here.
	Reference string `json:"reference,omitempty"`

	// Data, MIMEType and Filename are set for ArtifactBinary.
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`
	Size     int    `json:"size,omitempty"`
}

// Task is a submitted job.
type Task struct {
	ID      ID      `json:"task_id"`
	JobType JobType `json:"job_type"`
}

// PollOutcome is the observed result of one status check.
// RunID is set only when Status is SUCCESS.
type PollOutcome struct {
	Status TaskStatus `json:"status"`
	RunID  ID         `json:"run_id,omitempty"`
}

// Result is the normalized record of a completed lifecycle.
type Result struct {
	TaskID  ID         `json:"taskId"`
	RunID   ID         `json:"runId"`
	Status  TaskStatus `json:"status"`
	JobType JobType    `json:"jobType"`

	// Audio jobs.
	OutputType OutputType `json:"outputType,omitempty"`
	AudioURL   string     `json:"audioUrl,omitempty"`
	Artifact   *Artifact  `json:"artifact,omitempty"`

	// Text-to-voice.
	Previews     []any `json:"previews,omitempty"`
	PreviewCount int   `json:"previewCount,omitempty"`

	// Dubbing.
	OutputVideoURL   string `json:"outputVideoUrl,omitempty"`
	OutputAudioURL   string `json:"outputAudioUrl,omitempty"`
	Transcript       any    `json:"transcript,omitempty"`
	TranscriptLength int    `json:"transcriptLength,omitempty"`
}

// RunOptions configures one lifecycle. Zero fields take the job type's
// defaults (see JobType.Polling and JobType.DefaultOutput).
type RunOptions struct {
	// Output selects URL or raw-bytes retrieval for audio jobs.
	Output OutputType

	// Interval is the wait between status checks.
	Interval time.Duration

	// Timeout is the client-side budget for the polling phase.
	Timeout time.Duration
}

// Gender is the preferred voice gender for text-to-speech.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
)

// SpeechRequest is a text-to-speech job request.
type SpeechRequest struct {
	Text     string  `json:"text" yaml:"text"`
	VoiceID  Locator `json:"voice_id" yaml:"voice_id"`
	Language Locator `json:"language" yaml:"language"`

	// Optional.
	Gender             Gender `json:"gender,omitempty" yaml:"gender,omitempty"`
	Age                int    `json:"age,omitempty" yaml:"age,omitempty"`
	ProjectName        string `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	ProjectDescription string `json:"project_description,omitempty" yaml:"project_description,omitempty"`
}

// SoundRequest is a text-to-sound job request.
type SoundRequest struct {
	Prompt string `json:"prompt" yaml:"prompt"`

	// Duration is the length of the sound in seconds.
	Duration float64 `json:"duration" yaml:"duration"`
}

// VoiceRequest is a text-to-voice job request.
type VoiceRequest struct {
	Text string `json:"text" yaml:"text"`

	// VoiceDescription describes the desired voice. The service expects a
	// detailed description (roughly 18 words or 100 characters or more).
	VoiceDescription string `json:"voice_description" yaml:"voice_description"`
}

// DubbingRequest is an end-to-end dubbing job request.
type DubbingRequest struct {
	// VideoURL links to the media (YouTube, Google Drive or a direct file).
	VideoURL        string    `json:"video_url" yaml:"video_url"`
	SourceLanguage  Locator   `json:"source_language" yaml:"source_language"`
	TargetLanguages []Locator `json:"target_languages,omitempty" yaml:"target_languages,omitempty"`
}

// Voice is a catalog voice.
type Voice struct {
	ID   ID     `json:"id"`
	Name string `json:"voice_name"`
}

// Language is a catalog language.
type Language struct {
	ID        ID     `json:"id"`
	Name      string `json:"language"`
	ShortName string `json:"short_name"`
}

// DisplayName returns "English (en-US)" style names.
func (l Language) DisplayName() string {
	if l.ShortName == "" {
		return l.Name
	}
	return l.Name + " (" + l.ShortName + ")"
}
