package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/repository"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUsername = "test-user"
	TestPassword = "test-pass"
)

// TestConfig returns a server config that keeps computer players fast.
func TestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		BasicAuthUsername: TestUsername,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		Search: config.SearchConfig{
			Depth:     1,
			ThinkTime: 5 * time.Second,
		},
	}
}

// NewTestApp creates an app backed by in-memory stores.
func NewTestApp() (*fiber.App, *MemoryGameStore, *MemoryResultStore) {
	games := NewMemoryGameStore()
	results := &MemoryResultStore{}
	return internal.NewApp(TestConfig(), games, results), games, results
}

// DoJSON sends req and decodes a successful JSON response into out, if not nil.
func DoJSON(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
	}

	return resp
}

// NewJSONRequest creates a request with payload encoded as JSON.
func NewJSONRequest(t *testing.T, method, url string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

// MemoryGameStore is a GameStore that keeps sessions in a map.
type MemoryGameStore struct {
	mu       sync.Mutex
	sessions map[string]models.GameSession
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{sessions: make(map[string]models.GameSession)}
}

func (s *MemoryGameStore) CreateGame(_ context.Context, session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.ID = uuid.New().String()
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemoryGameStore) GetGame(_ context.Context, id string) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return &session, nil
}

func (s *MemoryGameStore) UpdateGame(_ context.Context, session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return repository.ErrGameNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

// MemoryResultStore is a ResultStore that keeps results in a slice.
type MemoryResultStore struct {
	mu      sync.Mutex
	results []models.ArenaResult
}

func (s *MemoryResultStore) SaveResult(_ context.Context, result *models.ArenaResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()
	s.results = append(s.results, *result)
	return nil
}

func (s *MemoryResultStore) ListResults(_ context.Context, players []string, limit int) ([]models.ArenaResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.ArenaResult, 0)
	for i := len(s.results) - 1; i >= 0 && len(results) < limit; i-- {
		if len(players) == 0 || slices.Contains(players, s.results[i].Player) {
			results = append(results, s.results[i])
		}
	}
	return results, nil
}

// Len returns the number of stored results.
func (s *MemoryResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
