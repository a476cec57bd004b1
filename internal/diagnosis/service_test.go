package diagnosis

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/numcraft/internal/llm"
)

func slowWrong() *ClassifyInput {
	return &ClassifyInput{Problem: prob(9, 4), Given: "2", Elapsed: 5 * time.Second, Accuracy: 0.4}
}

func TestService_RuleBased(t *testing.T) {
	svc := NewService(nil)
	defer svc.Close()

	result := svc.Diagnose(context.Background(), &ClassifyInput{Problem: prob(9, 4), Given: "13", Elapsed: 5 * time.Second}, nil)
	if result.Category != CategoryAddedInstead {
		t.Errorf("got %q, want %q", result.Category, CategoryAddedInstead)
	}
	if result.ClassifierName != "added-instead" {
		t.Errorf("got classifier %q", result.ClassifierName)
	}
}

func TestService_UnclassifiedWithoutLLM(t *testing.T) {
	svc := NewService(nil)
	defer svc.Close()

	result := svc.Diagnose(context.Background(), slowWrong(), nil)
	if result.Category != CategoryUnclassified {
		t.Errorf("got %q, want %q", result.Category, CategoryUnclassified)
	}
	if result.ClassifierName != "none" {
		t.Errorf("got classifier %q, want none", result.ClassifierName)
	}
}

func TestService_LLMFallback(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":"sub-fact-recall","confidence":0.7,"reasoning":"Guessed a nearby number"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	svc := NewService(mock)
	defer svc.Close()

	results := make(chan *DiagnosisResult, 1)
	sync := svc.Diagnose(context.Background(), slowWrong(), func(r *DiagnosisResult) { results <- r })
	if sync.Category != CategoryUnclassified {
		t.Errorf("sync result: got %q, want %q", sync.Category, CategoryUnclassified)
	}

	select {
	case r := <-results:
		if r.Category != CategoryMisconception {
			t.Errorf("async category = %q, want %q", r.Category, CategoryMisconception)
		}
		if r.MisconceptionID != "sub-fact-recall" {
			t.Errorf("misconception ID = %q", r.MisconceptionID)
		}
		if r.ClassifierName != "llm" {
			t.Errorf("classifier = %q, want llm", r.ClassifierName)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for async LLM diagnosis")
	}

	req := mock.Requests()
	if len(req) != 1 {
		t.Fatalf("got %d requests, want 1", len(req))
	}
	if !strings.Contains(req[0].Messages[0].Content, "9 - 4 = ?") {
		t.Errorf("prompt missing question: %s", req[0].Messages[0].Content)
	}
}

func TestDiagnoser_InvalidIDIsUnclassified(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":"fake-id","confidence":0.8,"reasoning":"test"}`)
	d := NewDiagnoser(llm.NewMockProvider(llm.MockResponse{Content: resp}), DefaultDiagnoserConfig())

	result, err := d.Diagnose(context.Background(), &DiagnosisRequest{
		QuestionText:  "9 - 4 = ?",
		CorrectAnswer: 5,
		PlayerAnswer:  "2",
		Candidates:    AllMisconceptions(),
	})
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if result.Category != CategoryUnclassified {
		t.Errorf("got %q, want %q", result.Category, CategoryUnclassified)
	}
	if result.Reasoning != "test" {
		t.Errorf("reasoning = %q", result.Reasoning)
	}
}

func TestDiagnoser_NullID(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":null,"confidence":0.3,"reasoning":"No clear pattern"}`)
	d := NewDiagnoser(llm.NewMockProvider(llm.MockResponse{Content: resp}), DefaultDiagnoserConfig())

	result, err := d.Diagnose(context.Background(), &DiagnosisRequest{QuestionText: "9 - 4 = ?", CorrectAnswer: 5, PlayerAnswer: "1"})
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if result.Category != CategoryUnclassified || result.MisconceptionID != "" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestDiagnoser_ProviderError(t *testing.T) {
	d := NewDiagnoser(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Provider: "mock"}}), DefaultDiagnoserConfig())

	_, err := d.Diagnose(context.Background(), &DiagnosisRequest{QuestionText: "9 - 4 = ?"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDiagnoser_PromptCarriesBattleContext(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":null,"confidence":0.2,"reasoning":"unclear"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	d := NewDiagnoser(mock, DefaultDiagnoserConfig())

	req := newDiagnosisRequest(&ClassifyInput{Problem: prob(13, 6), Given: "4", Elapsed: 2340 * time.Millisecond})
	if !req.NeedsBorrow {
		t.Error("13 - 6 should need a borrow")
	}
	if _, err := d.Diagnose(context.Background(), req); err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	msg := mock.Requests()[0].Messages[0].Content
	for _, want := range []string{"13 - 6 = ? (needs a borrow)", "Player typed: 4 after 2.3s"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestService_CloseDrainsAndIsIdempotent(t *testing.T) {
	resp := json.RawMessage(`{"misconception_id":"sub-fact-recall","confidence":0.7,"reasoning":"nearby number"}`)
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Content: resp}))

	var got *DiagnosisResult
	svc.Diagnose(context.Background(), slowWrong(), func(r *DiagnosisResult) { got = r })
	svc.Close()

	if got == nil || got.Category != CategoryMisconception {
		t.Fatalf("queued diagnosis not finished before Close returned: %+v", got)
	}

	// Diagnosing after Close falls back to the rules instead of panicking.
	called := false
	res := svc.Diagnose(context.Background(), slowWrong(), func(*DiagnosisResult) { called = true })
	if res.Category != CategoryUnclassified {
		t.Errorf("got %q, want %q", res.Category, CategoryUnclassified)
	}
	svc.Close()
	if called {
		t.Error("callback fired after Close")
	}
}

func TestService_CloseWithoutLLM(t *testing.T) {
	svc := NewService(nil)
	svc.Close()
	svc.Close()
}
