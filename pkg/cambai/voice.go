package cambai

import (
	"context"
	"net/http"
)

// VoiceService provides text-to-voice jobs and the voice catalog.
type VoiceService struct {
	client *Client
}

// Generate designs a voice from a description and waits for the preview
// samples. The result carries Previews and PreviewCount.
func (s *VoiceService) Generate(ctx context.Context, req *VoiceRequest, opts RunOptions) (*Result, error) {
	return s.client.Run(ctx, JobTextToVoice, req, opts)
}

// List returns the voices available to the account.
func (s *VoiceService) List(ctx context.Context) ([]Voice, error) {
	var voices []Voice
	if err := s.client.http.requestJSON(ctx, http.MethodGet, "/list-voices", nil, nil, &voices); err != nil {
		return nil, err
	}
	return voices, nil
}
