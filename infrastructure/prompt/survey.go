package prompt

import (
	"github.com/AlecAivazis/survey/v2"

	"audiosweep/domain/audio"
)

// SurveyPrompter implements audio.Prompter using the survey library
type SurveyPrompter struct{}

// NewSurveyPrompter creates the production prompter
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

// Confirm asks a yes/no question and blocks until the operator answers
func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// Ensure SurveyPrompter implements audio.Prompter
var _ audio.Prompter = (*SurveyPrompter)(nil)
