package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naukri-ai/talent-ranker/internal/ai"

	"go.uber.org/zap"
)

type stubCaller struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubCaller) call(_ context.Context, _, _ string) (string, error) {
	idx := s.calls
	s.calls++

	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if err != nil {
		return "", err
	}

	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("no scripted response")
}

func newTestGenerator(caller contentCaller, maxRetries int) *Generator {
	return &Generator{
		caller:     caller,
		modelName:  "stub-model",
		maxRetries: maxRetries,
		timeout:    time.Second,
		log:        zap.NewNop(),
	}
}

func TestGenerateContent(t *testing.T) {
	stub := &stubCaller{responses: []string{`{"ok": true}`}}
	generator := newTestGenerator(stub, 2)

	output, err := generator.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != `{"ok": true}` {
		t.Fatalf("unexpected output: %s", output)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single call, got %d", stub.calls)
	}
}

func TestGenerateContentRetriesTransientFailures(t *testing.T) {
	stub := &stubCaller{
		errs:      []error{errors.New("temporary"), nil},
		responses: []string{"", "recovered"},
	}
	generator := newTestGenerator(stub, 2)

	output, err := generator.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "recovered" {
		t.Fatalf("unexpected output: %s", output)
	}
	if stub.calls != 2 {
		t.Fatalf("expected two calls, got %d", stub.calls)
	}
}

func TestGenerateContentExhaustedRetries(t *testing.T) {
	failure := errors.New("always failing")
	stub := &stubCaller{errs: []error{failure, failure}}
	generator := newTestGenerator(stub, 1)

	_, err := generator.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected an error after exhausting retries")
	}

	var svc *ai.ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected a ServiceError, got %T", err)
	}
	if !errors.Is(err, failure) {
		t.Fatalf("expected the last failure to be wrapped, got %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected two calls for one retry, got %d", stub.calls)
	}
}

func TestGenerateContentEmptyResponseIsAnError(t *testing.T) {
	stub := &stubCaller{responses: []string{"   "}}
	generator := newTestGenerator(stub, 0)

	_, err := generator.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected an error for an empty response")
	}

	var svc *ai.ServiceError
	if !errors.As(err, &svc) {
		t.Fatalf("expected a ServiceError, got %T", err)
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	stub := &stubCaller{}
	generator := newTestGenerator(stub, 0)

	if _, err := generator.GenerateContent(context.Background(), "  "); err == nil {
		t.Fatalf("expected an error for an empty prompt")
	}
	if stub.calls != 0 {
		t.Fatalf("expected no calls for an empty prompt, got %d", stub.calls)
	}
}

func TestGenerateContentCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubCaller{errs: []error{errors.New("temporary"), nil}, responses: []string{"", "never reached"}}
	generator := newTestGenerator(stub, 3)

	_, err := generator.GenerateContent(ctx, "prompt")
	if err == nil {
		t.Fatalf("expected an error for a canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancellation to surface, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected the retry loop to stop after cancellation, got %d calls", stub.calls)
	}
}

func TestGeneratorModel(t *testing.T) {
	generator := newTestGenerator(&stubCaller{}, 0)

	if got := generator.Model(); got != "stub-model" {
		t.Fatalf("unexpected model name: %s", got)
	}

	var nilGen *Generator
	if got := nilGen.Model(); got != "" {
		t.Fatalf("expected empty model for a nil generator, got %q", got)
	}
}
