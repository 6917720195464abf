package llm

import "context"

// Client abstracts the resume evaluator. Implementations never return an
// error: every failure mode is absorbed into a Result variant.
type Client interface {
	Analyze(ctx context.Context, resumeText, targetRole string) Result
}

// DemoClient is the degraded-service evaluator used when no API key is
// configured. It returns a fixed canned result and makes no network calls.
type DemoClient struct{}

// Analyze returns the canned demo result.
func (DemoClient) Analyze(ctx context.Context, resumeText, targetRole string) Result {
	_ = ctx
	_ = resumeText
	_ = targetRole
	return NewStructured(Structured{
		OverallScore:    50,
		Summary:         "Demo mode: no GOOGLE_API_KEY configured.",
		Strengths:       []string{"Demo strength 1", "Demo strength 2"},
		Weaknesses:      []string{"Demo weakness 1", "Demo weakness 2"},
		MissingKeywords: []string{"Azure", "Kubernetes"},
		ImprovementSuggestions: []string{
			"Configure a Gemini API key to get real analysis.",
			"Add concrete metrics and cloud technologies to your CV.",
		},
	})
}

var _ Client = DemoClient{}
