package domain

import "time"

const (
	QuestionTypeRadioButton = "RADIO_BUTTON"
	QuestionTypeCheckBox    = "CHECK_BOX"
	QuestionTypeInputNumber = "INPUT_NUMBER"
	QuestionTypeInputText   = "INPUT_TEXT"
)

// Question es una pregunta del cuestionario. Category es la etiqueta
// semantica que usa el motor de scoring.
type Question struct {
	ID              string    `json:"id"`
	Text            string    `json:"question_text"`
	Category        string    `json:"category,omitempty"`
	InputType       string    `json:"input_type"`
	PossibleAnswers []string  `json:"possible_inputs,omitempty"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
}

// ValidQuestionType indica si el tipo de input es uno de los soportados.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeRadioButton, QuestionTypeCheckBox, QuestionTypeInputNumber, QuestionTypeInputText:
		return true
	}
	return false
}
