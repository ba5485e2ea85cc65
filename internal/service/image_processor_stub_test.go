package service

import (
	"context"

	"github.com/blink-new/ecotravel-booking-platform/internal/media"
)

type stubImageProcessor struct {
	output      []byte
	contentType string
	err         error

	calls    int
	last     media.Upload
	lastSpec media.Spec
}

func (s *stubImageProcessor) Process(ctx context.Context, upload media.Upload, spec media.Spec) (*media.Result, error) {
	s.calls++
	s.last = upload
	s.lastSpec = spec
	if s.err != nil {
		return nil, s.err
	}
	ct := s.contentType
	if ct == "" {
		ct = upload.ContentType
	}
	return &media.Result{
		Bytes:       append([]byte(nil), s.output...),
		ContentType: ct,
		Resized:     true,
	}, nil
}
