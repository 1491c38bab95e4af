package llm

import (
	"encoding/json"
	"strings"
)

// AnalysisError is the typed failure surfaced to the HTTP boundary as a
// {"error": true, "message": ...} payload. It never propagates further up.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string { return e.Message }

func (e *AnalysisError) Unwrap() error { return e.Err }

// ParseReply strips an optional markdown code fence and parses the reply
// as strict JSON. Models occasionally wrap JSON in ```json fences despite
// the system instruction.
func ParseReply(raw string) (map[string]interface{}, error) {
	cleaned := StripFence(raw)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &AnalysisError{
			Message: "خطا در پردازش پاسخ هوش مصنوعی",
			Err:     err,
		}
	}
	return parsed, nil
}

// StripFence removes surrounding ``` / ```json fence lines, leaving the
// content untouched when no fence is present.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "```json" || trimmed == "```" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
