package cambai

import "context"

// SoundService provides text-to-sound jobs.
type SoundService struct {
	client *Client
}

// Generate creates a sound effect from a prompt and waits for the audio.
func (s *SoundService) Generate(ctx context.Context, req *SoundRequest, opts RunOptions) (*Result, error) {
	return s.client.Run(ctx, JobTextToSound, req, opts)
}
