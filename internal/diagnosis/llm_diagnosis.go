package diagnosis

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/abhisek/numcraft/internal/llm"
)

// DiagnoserConfig holds configuration for the LLM diagnoser.
type DiagnoserConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDiagnoserConfig returns sensible defaults.
func DefaultDiagnoserConfig() DiagnoserConfig {
	return DiagnoserConfig{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Diagnoser performs LLM-based misconception identification.
type Diagnoser struct {
	provider llm.Provider
	cfg      DiagnoserConfig
}

// NewDiagnoser creates an LLM-based diagnoser.
func NewDiagnoser(provider llm.Provider, cfg DiagnoserConfig) *Diagnoser {
	return &Diagnoser{provider: provider, cfg: cfg}
}

// DiagnosisRequest describes one missed turn for the model.
type DiagnosisRequest struct {
	QuestionText  string
	CorrectAnswer int
	PlayerAnswer  string
	NeedsBorrow   bool
	Seconds       float64 // time taken to answer
	Candidates    []*Misconception
}

func newDiagnosisRequest(in *ClassifyInput) *DiagnosisRequest {
	return &DiagnosisRequest{
		QuestionText:  in.Problem.Text(),
		CorrectAnswer: in.Problem.Answer,
		PlayerAnswer:  in.Given,
		NeedsBorrow:   in.Problem.NeedsBorrow(),
		Seconds:       in.Elapsed.Round(100 * time.Millisecond).Seconds(),
		Candidates:    AllMisconceptions(),
	}
}

type diagnosisOutput struct {
	MisconceptionID *string `json:"misconception_id"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// Diagnose sends a wrong answer to the LLM for misconception identification.
func (d *Diagnoser) Diagnose(ctx context.Context, req *DiagnosisRequest) (*DiagnosisResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDiagnosis)

	userMsg, err := buildDiagnosisMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build diagnosis prompt: %w", err)
	}

	prompt := llm.Prompt(diagnosisSystemPrompt, userMsg, DiagnosisSchema, d.cfg.MaxTokens)
	prompt.Temperature = d.cfg.Temperature
	resp, err := d.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm diagnosis: %w", err)
	}

	var raw diagnosisOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse diagnosis response: %w", err)
	}

	result := &DiagnosisResult{
		Category:       CategoryUnclassified,
		Confidence:     raw.Confidence,
		ClassifierName: "llm",
		Reasoning:      raw.Reasoning,
	}
	// IDs outside the candidate list are treated as no match.
	if raw.MisconceptionID != nil && hasCandidate(req.Candidates, *raw.MisconceptionID) {
		result.Category = CategoryMisconception
		result.MisconceptionID = *raw.MisconceptionID
	}
	return result, nil
}

func hasCandidate(candidates []*Misconception, id string) bool {
	for _, c := range candidates {
		if c.ID == id {
			return true
		}
	}
	return false
}

const diagnosisSystemPrompt = `You review wrong answers from a subtraction battle game. The player typed an answer against a countdown while a monster attacked. Decide whether the mistake matches one of the listed misconceptions.

Rules:
- Return the ID of a listed misconception only when the wrong answer clearly follows from it.
- Otherwise return null for misconception_id.
- Never make up an ID.
- confidence is between 0.0 and 1.0.
- reasoning is one sentence.`

var diagnosisUserTemplate = template.Must(template.New("diagnosis").Parse(`Problem: {{.QuestionText}}{{if .NeedsBorrow}} (needs a borrow){{end}}
Correct answer: {{.CorrectAnswer}}
Player typed: {{.PlayerAnswer}} after {{printf "%.1f" .Seconds}}s

Known misconceptions:
{{range .Candidates}}- {{.ID}}: {{.Description}}
{{end}}`))

func buildDiagnosisMessage(req *DiagnosisRequest) (string, error) {
	var buf bytes.Buffer
	if err := diagnosisUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
