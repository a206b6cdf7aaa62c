package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/algebriz/internal/llm"
)

// ReviewerConfig holds configuration for the LLM reviewer.
type ReviewerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultReviewerConfig returns sensible defaults.
func DefaultReviewerConfig() ReviewerConfig {
	return ReviewerConfig{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Reviewer asks an LLM for a second opinion on a wrong choice the rule
// engine could not classify. Its answer is advisory only.
type Reviewer struct {
	provider llm.Provider
	cfg      ReviewerConfig
}

// NewReviewer creates an LLM-backed reviewer.
func NewReviewer(provider llm.Provider, cfg ReviewerConfig) *Reviewer {
	return &Reviewer{provider: provider, cfg: cfg}
}

// ReviewRequest is the input for an LLM review.
type ReviewRequest struct {
	Equation   string
	Question   string
	Correct    string
	Chosen     string
	Indicators []Indicator
	Candidates []*Entry
}

// Review is the reviewer's verdict. Type is empty when the model found no match.
type Review struct {
	Type       Misconception
	Confidence float64
	Reasoning  string
}

type reviewOutput struct {
	Misconception *string `json:"misconception"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// Review sends the wrong choice to the LLM.
func (r *Reviewer) Review(ctx context.Context, req *ReviewRequest) (*Review, error) {
	ctx = llm.WithPurpose(ctx, "misconception-review")

	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = All()
	}
	prompt := *req
	prompt.Candidates = candidates

	userMsg, err := buildReviewMessage(&prompt)
	if err != nil {
		return nil, fmt.Errorf("build review prompt: %w", err)
	}

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: reviewSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ReviewSchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM review failed: %w", err)
	}

	var raw reviewOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	out := &Review{Confidence: raw.Confidence, Reasoning: raw.Reasoning}
	if raw.Misconception != nil {
		for _, c := range candidates {
			if string(c.Type) == *raw.Misconception {
				out.Type = c.Type
				break
			}
		}
	}
	return out, nil
}

const reviewSystemPrompt = `You are an algebra teacher reviewing a learner's wrong step while solving a linear equation of the form a·x + b = c.

Instructions:
- If the wrong operation clearly reflects one of the listed misconceptions, return its identifier.
- Otherwise return null for misconception.
- Do NOT invent identifiers. Only use identifiers from the list provided.
- Provide a confidence score (0.0–1.0).
- Keep reasoning to one sentence a learner could read.`

var reviewUserTemplate = template.Must(template.New("review").Parse(`Equation: {{.Equation}}
Step: {{.Question}}
Correct operation: {{.Correct}}
Learner chose: {{.Chosen}}
{{if .Indicators}}Signals: {{range $i, $ind := .Indicators}}{{if $i}}, {{end}}{{$ind}}{{end}}
{{end}}
Known misconceptions:
{{range .Candidates}}- {{.Type}}: {{.Description}}
{{end}}`))

func buildReviewMessage(req *ReviewRequest) (string, error) {
	var buf bytes.Buffer
	if err := reviewUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
