package repository

import (
	"context"

	"github.com/rotisserie/eris"

	"robo-advisor/internal/db"
	"robo-advisor/internal/domain"
)

type QuestionRepository interface {
	List(ctx context.Context) ([]domain.Question, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Question, error)
	Upsert(ctx context.Context, question domain.Question) error
}

type PgQuestionRepository struct {
	pool db.Pool
}

func NewPgQuestionRepository(pool db.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

const questionColumns = `id, question_text, COALESCE(category, ''), question_type, COALESCE(possible_answers, '{}'), position, created_at`

// List devuelve el cuestionario en orden de presentacion.
func (r *PgQuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY position ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "questions: list")
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "questions: iterate")
	}
	return questions, nil
}

// GetByIDs resuelve ids a preguntas. Los ids inexistentes no aparecen en el mapa.
func (r *PgQuestionRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Question, error) {
	out := make(map[string]domain.Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, eris.Wrap(err, "questions: get by ids")
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "questions: iterate")
	}
	return out, nil
}

// Upsert inserta o reemplaza una pregunta del catalogo por id.
func (r *PgQuestionRepository) Upsert(ctx context.Context, q domain.Question) error {
	const query = `
		INSERT INTO questions (id, question_text, category, question_type, possible_answers, position, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			question_text = EXCLUDED.question_text,
			category = EXCLUDED.category,
			question_type = EXCLUDED.question_type,
			possible_answers = EXCLUDED.possible_answers,
			position = EXCLUDED.position
	`
	_, err := r.pool.Exec(ctx, query,
		q.ID,
		q.Text,
		q.Category,
		q.InputType,
		q.PossibleAnswers,
		q.Position,
		q.CreatedAt,
	)
	return eris.Wrapf(err, "questions: upsert %s", q.ID)
}

// SeedQuestions aplica el catalogo completo; es idempotente porque los ids son estables.
func SeedQuestions(ctx context.Context, repo QuestionRepository, questions []domain.Question) error {
	for _, q := range questions {
		if err := repo.Upsert(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (domain.Question, error) {
	var q domain.Question
	if err := row.Scan(
		&q.ID,
		&q.Text,
		&q.Category,
		&q.InputType,
		&q.PossibleAnswers,
		&q.Position,
		&q.CreatedAt,
	); err != nil {
		return domain.Question{}, eris.Wrap(err, "questions: scan")
	}
	if len(q.PossibleAnswers) == 0 {
		q.PossibleAnswers = nil
	}
	return q, nil
}
