package db

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"robo-advisor/internal/domain"
)

//go:embed catalog/questions.yaml
var catalogYAML []byte

type catalogFile struct {
	Questions []catalogQuestion `yaml:"questions"`
}

type catalogQuestion struct {
	ID        string   `yaml:"id"`
	Text      string   `yaml:"text"`
	Category  string   `yaml:"category"`
	InputType string   `yaml:"input_type"`
	Options   []string `yaml:"options"`
}

// LoadCatalog devuelve el cuestionario base embebido. La posicion de cada
// pregunta es su orden en el archivo, empezando en 1.
func LoadCatalog() ([]domain.Question, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) ([]domain.Question, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(file.Questions))
	questions := make([]domain.Question, 0, len(file.Questions))
	for i, q := range file.Questions {
		if q.ID == "" || q.Text == "" {
			return nil, fmt.Errorf("question catalog entry %d: id and text are required", i+1)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question catalog entry %d: duplicate id %s", i+1, q.ID)
		}
		seen[q.ID] = struct{}{}
		if !domain.ValidQuestionType(q.InputType) {
			return nil, fmt.Errorf("question catalog entry %d: invalid input type %q", i+1, q.InputType)
		}
		questions = append(questions, domain.Question{
			ID:              q.ID,
			Text:            q.Text,
			Category:        q.Category,
			InputType:       q.InputType,
			PossibleAnswers: q.Options,
			Position:        i + 1,
			CreatedAt:       now,
		})
	}
	return questions, nil
}
