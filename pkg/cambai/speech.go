package cambai

import "context"

// SpeechService provides text-to-speech jobs.
type SpeechService struct {
	client *Client
}

// TextToSpeech converts text into speech and waits for the audio.
//
// With OutputRawBytes (the default) the result carries a binary Artifact
// holding FLAC audio; with OutputFileURL it carries AudioURL.
func (s *SpeechService) TextToSpeech(ctx context.Context, req *SpeechRequest, opts RunOptions) (*Result, error) {
	return s.client.Run(ctx, JobTextToSpeech, req, opts)
}
