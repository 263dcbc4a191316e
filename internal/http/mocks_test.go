package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"robo-advisor/internal/db"
	"robo-advisor/internal/domain"
	"robo-advisor/internal/scoring"
	"robo-advisor/internal/service"
)

// memStore implementa todos los repositorios en memoria.
type memStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	questions []domain.Question
	responses []domain.QuestionResponse
	metrics   []domain.FinancialMetrics
	recs      []domain.PortfolioRecommendation
}

func newMemStore(t *testing.T) *memStore {
	t.Helper()
	catalog, err := db.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return &memStore{users: make(map[string]domain.User), questions: catalog}
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(_ context.Context, user domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[user.ID] = user
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m memUsers) GetByUsername(_ context.Context, username string) (domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memQuestions struct{ s *memStore }

func (m memQuestions) List(context.Context) ([]domain.Question, error) {
	return m.s.questions, nil
}

func (m memQuestions) GetByIDs(_ context.Context, ids []string) (map[string]domain.Question, error) {
	out := make(map[string]domain.Question)
	for _, q := range m.s.questions {
		for _, id := range ids {
			if q.ID == id {
				out[id] = q
			}
		}
	}
	return out, nil
}

func (m memQuestions) Upsert(_ context.Context, q domain.Question) error {
	m.s.questions = append(m.s.questions, q)
	return nil
}

type memSubmissions struct{ s *memStore }

func (m memSubmissions) SaveSubmission(_ context.Context, responses []domain.QuestionResponse, metrics domain.FinancialMetrics) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.responses = append(m.s.responses, responses...)
	m.s.metrics = append(m.s.metrics, metrics)
	return nil
}

func (m memSubmissions) ListResponses(_ context.Context, _, submissionID string) ([]domain.QuestionResponse, error) {
	var out []domain.QuestionResponse
	for _, r := range m.s.responses {
		if r.SubmissionID == submissionID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memMetrics struct{ s *memStore }

func (m memMetrics) LatestByUserID(_ context.Context, userID string) (domain.FinancialMetrics, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := len(m.s.metrics) - 1; i >= 0; i-- {
		if m.s.metrics[i].UserID == userID {
			return m.s.metrics[i], nil
		}
	}
	return domain.FinancialMetrics{}, pgx.ErrNoRows
}

func (m memMetrics) ListByUserID(_ context.Context, userID string, _ int) ([]domain.FinancialMetrics, error) {
	var out []domain.FinancialMetrics
	for _, r := range m.s.metrics {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memRecommendations struct{ s *memStore }

func (m memRecommendations) Create(_ context.Context, rec domain.PortfolioRecommendation) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.recs = append(m.s.recs, rec)
	return nil
}

func (m memRecommendations) ListByUserID(_ context.Context, userID string, _ int) ([]domain.PortfolioRecommendation, error) {
	var out []domain.PortfolioRecommendation
	for _, r := range m.s.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type testApp struct {
	router *gin.Engine
	store  *memStore
	jwt    *service.JWTService
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := newMemStore(t)
	users := memUsers{store}

	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	userSvc := service.NewUserService(logger, users, service.NewMemorySigninRateLimiter(time.Minute, 3))
	qSvc := service.NewQuestionnaireService(logger, users, memQuestions{store}, memSubmissions{store}, scoring.NewScorer(scoring.Options{}))
	pSvc := service.NewPortfolioService(logger, users, memMetrics{store}, memRecommendations{store}, nil, "INR")

	router := NewRouter(
		logger,
		[]string{"http://localhost:3000"},
		jwtSvc,
		NewAuthHandler(logger, userSvc, jwtSvc, false),
		NewQuestionnaireHandler(logger, qSvc),
		NewPortfolioHandler(logger, pSvc),
		nil,
	)
	return testApp{router: router, store: store, jwt: jwtSvc}
}

func performRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: authCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// signup crea un usuario y devuelve su token.
func (a testApp) signup(t *testing.T, username string) string {
	t.Helper()
	rec := performRequest(a.router, http.MethodPost, "/auth/signup", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	return resp.Token
}
