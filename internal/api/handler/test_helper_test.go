package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/usersvc/internal/api/dto"
	"github.com/martijn/usersvc/internal/core/service"
	"github.com/martijn/usersvc/internal/infrastructure/sqlite"
	"github.com/martijn/usersvc/internal/logging"
)

// testEnv holds all test dependencies
type testEnv struct {
	db      *sqlite.DB
	router  *gin.Engine
	logs    *bytes.Buffer
	handler *UserHandler
}

// envelope mirrors dto.Envelope with the payload left raw
type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	var logs bytes.Buffer
	logger, err := logging.New(&logs, "text", "debug")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	userService := service.NewUserService(sqlite.NewUserRepository(db), false)
	userHandler := NewUserHandler(userService, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/addUser", userHandler.AddUser)
	router.PUT("/updateUser/:id", userHandler.UpdateUser)
	router.GET("/getUsers", userHandler.GetUsers)
	router.GET("/getUser/:id", userHandler.GetUser)
	router.POST("/clearUsers", userHandler.ClearUsers)
	router.DELETE("/deleteUser/:id", userHandler.DeleteUser)

	env := &testEnv{
		db:      db,
		router:  router,
		logs:    &logs,
		handler: userHandler,
	}
	t.Cleanup(env.cleanup)
	return env
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// makeRequest performs a request with an optional raw JSON body
func (env *testEnv) makeRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createUser posts a valid payload and returns the stored record
func (env *testEnv) createUser(t *testing.T, username, email string, age int) dto.UserResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]any{
		"username": username,
		"email":    email,
		"password": "secret-" + username,
		"age":      age,
	})
	w := env.makeRequest(t, http.MethodPost, "/addUser", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create user %s: %d %s", username, w.Code, w.Body.String())
	}
	return parseUser(t, parseEnvelope(t, w))
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseUser(t *testing.T, env envelope) dto.UserResponse {
	t.Helper()

	var user dto.UserResponse
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("failed to parse user: %v\nData: %s", err, env.Data)
	}
	return user
}

func parseUsers(t *testing.T, env envelope) []dto.UserResponse {
	t.Helper()

	var users []dto.UserResponse
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("failed to parse users: %v\nData: %s", err, env.Data)
	}
	return users
}
