package cambai

import (
	"context"
	"net/http"
)

// DubbingService provides end-to-end dubbing jobs and the language catalogs.
type DubbingService struct {
	client *Client
}

// Dub dubs a video into the target languages and waits for the result.
//
// Dubbing results are always URLs and a transcript; requesting
// OutputRawBytes fails with ErrBinaryUnsupported before anything is sent.
func (s *DubbingService) Dub(ctx context.Context, req *DubbingRequest, opts RunOptions) (*Result, error) {
	return s.client.Run(ctx, JobDubbing, req, opts)
}

// SourceLanguages returns the languages media can be dubbed from.
func (s *DubbingService) SourceLanguages(ctx context.Context) ([]Language, error) {
	return s.languages(ctx, "/source-languages")
}

// TargetLanguages returns the languages media can be dubbed into.
func (s *DubbingService) TargetLanguages(ctx context.Context) ([]Language, error) {
	return s.languages(ctx, "/target-languages")
}

func (s *DubbingService) languages(ctx context.Context, path string) ([]Language, error) {
	var langs []Language
	if err := s.client.http.requestJSON(ctx, http.MethodGet, path, nil, nil, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}
