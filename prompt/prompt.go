// Package prompt supplies the operator-facing confirmation used by the
// retry engine when its budget is exhausted. The engine only sees a plain
// decision callback; the terminal interaction lives here.
package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/workflowkit/httpcore/http"
)

// Confirmer answers whether an exhausted operation should keep retrying.
type Confirmer interface {
	ConfirmRetry(operationName string, attempts int, lastErr error) bool
}

// SurveyConfirmer asks the operator through an interactive terminal
// prompt. A prompt failure (for example a non-interactive terminal) is
// treated as a decline.
type SurveyConfirmer struct{}

// NewSurveyConfirmer creates a survey-based confirmer.
func NewSurveyConfirmer() *SurveyConfirmer {
	return &SurveyConfirmer{}
}

// ConfirmRetry implements Confirmer.
func (c *SurveyConfirmer) ConfirmRetry(operationName string, attempts int, lastErr error) bool {
	var result bool
	confirm := &survey.Confirm{
		Message: fmt.Sprintf("%s failed after %d attempts (%v). Keep retrying?",
			operationName, attempts, lastErr),
		Default: false,
	}
	if err := survey.AskOne(confirm, &result); err != nil {
		return false
	}
	return result
}

// NonInteractiveConfirmer always stops: the answer for scripts and CI.
type NonInteractiveConfirmer struct{}

// ConfirmRetry implements Confirmer.
func (NonInteractiveConfirmer) ConfirmRetry(string, int, error) bool {
	return false
}

// ContinueFunc adapts a Confirmer to the retry engine's callback type.
func ContinueFunc(c Confirmer) http.ContinueFunc {
	return c.ConfirmRetry
}

var (
	_ Confirmer = (*SurveyConfirmer)(nil)
	_ Confirmer = NonInteractiveConfirmer{}
)
