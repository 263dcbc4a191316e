package domain

import "time"

// QuestionResponse es una respuesta enviada dentro de un lote (SubmissionID).
type QuestionResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	QuestionID   string    `json:"question_id"`
	SubmissionID string    `json:"submission_id"`
	Response     string    `json:"response"`
	CreatedAt    time.Time `json:"created_at"`
}
