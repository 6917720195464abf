package gemini

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analyze.txt
var analyzePrompt string

// BuildPrompt substitutes the target role and resume text into the analysis
// prompt template. The resume text goes in verbatim.
func BuildPrompt(resumeText, targetRole string) string {
	replacer := strings.NewReplacer(
		"{{TARGET_ROLE}}", targetRole,
		"{{RESUME_TEXT}}", resumeText,
	)
	return replacer.Replace(analyzePrompt)
}
