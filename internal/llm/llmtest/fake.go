// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/llm"
)

// Fake replays Responses in order. When Handler is set it is used instead.
type Fake struct {
	Responses []string
	Handler   func(req llm.Request) (string, error)
	Err       error

	mu       sync.Mutex
	requests []llm.Request
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	if f.Handler != nil {
		return f.Handler(req)
	}
	if len(f.Responses) == 0 {
		return "", errors.New("llmtest: no scripted response left")
	}
	resp := f.Responses[0]
	f.Responses = f.Responses[1:]
	return resp, nil
}

// Requests returns a copy of every request received so far.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}
