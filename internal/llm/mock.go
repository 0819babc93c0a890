package llm

import (
	"context"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	// Text is the full response. Stream delivers Chunks when set,
	// otherwise Text as a single chunk.
	Text   string
	Chunks []string
	Usage  Usage

	// Err is returned instead of a response. When Chunks are also set,
	// Stream delivers them first and fails mid-stream.
	Err error

	// Gate, when non-nil, blocks the call until it is closed or the
	// context ends.
	Gate <-chan struct{}
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.next(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return m.response(resp), nil
}

// Stream delivers the next canned response chunk by chunk.
func (m *MockProvider) Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error) {
	resp, err := m.next(ctx, req)
	if err != nil {
		return nil, err
	}

	chunks := resp.Chunks
	if len(chunks) == 0 && resp.Err == nil {
		chunks = []string{resp.Text}
	}
	for _, c := range chunks {
		onChunk(c)
	}

	if resp.Err != nil {
		if len(chunks) > 0 {
			return nil, &ErrStreamInterrupted{Delivered: len(chunks), Err: resp.Err}
		}
		return nil, resp.Err
	}

	if resp.Text == "" {
		resp.Text = strings.Join(chunks, "")
	}
	return m.response(resp), nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and Stream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) next(ctx context.Context, req Request) (MockResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return MockResponse{}, &ErrProviderUnavailable{Err: nil}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Gate != nil {
		select {
		case <-resp.Gate:
		case <-ctx.Done():
			return MockResponse{}, ctx.Err()
		}
	}
	return resp, nil
}

func (m *MockProvider) response(resp MockResponse) *Response {
	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}
}
