package diagnosis

import (
	"context"
	"sync"

	"github.com/abhisek/numcraft/internal/llm"
)

// Service coordinates error diagnosis using rule-based classifiers and
// optional LLM-based misconception identification.
type Service struct {
	classifiers []Classifier
	diagnoser   *Diagnoser
	pending     chan diagnosisJob
	done        chan struct{}

	mu     sync.Mutex
	closed bool
}

type diagnosisJob struct {
	ctx context.Context
	req *DiagnosisRequest
	cb  func(*DiagnosisResult)
}

// NewService creates a diagnosis service. If provider is nil, only rule-based
// classification is available.
func NewService(provider llm.Provider) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan diagnosisJob, 32),
		done:        make(chan struct{}),
	}
	if provider == nil {
		close(s.done)
	} else {
		s.diagnoser = NewDiagnoser(provider, DefaultDiagnoserConfig())
		go s.processLoop()
	}
	return s
}

// Diagnose classifies a missed turn. Rule-based classification is
// synchronous. If rules are inconclusive and an LLM is available, async LLM
// diagnosis is dispatched and cb fires when the result is ready.
func (s *Service) Diagnose(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) *DiagnosisResult {
	cat, conf, name := RunClassifiers(s.classifiers, input)
	if cat != "" {
		return &DiagnosisResult{
			Category:       cat,
			Confidence:     conf,
			ClassifierName: name,
		}
	}

	if s.diagnoser != nil && cb != nil {
		s.enqueue(diagnosisJob{ctx: ctx, req: newDiagnosisRequest(input), cb: cb})
	}

	return &DiagnosisResult{
		Category:       CategoryUnclassified,
		ClassifierName: "none",
	}
}

// enqueue hands job to the loop. A full queue or a closed service keeps the
// rule-based result.
func (s *Service) enqueue(job diagnosisJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.pending <- job:
	default:
	}
}

func (s *Service) processLoop() {
	defer close(s.done)
	for job := range s.pending {
		result, err := s.diagnoser.Diagnose(job.ctx, job.req)
		if err != nil || result == nil {
			continue
		}
		job.cb(result)
	}
}

// Close stops accepting LLM work and waits for queued diagnoses to finish.
// It is safe to call more than once.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
	s.mu.Unlock()
	<-s.done
}
