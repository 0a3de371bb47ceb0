package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/config"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/handler"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/repository"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/router"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
)

func testConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database:      config.DatabaseConfig{URL: "postgres://localhost/mylist"},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*echo.Echo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	log := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &log}

	services := service.NewServices(repository.NewRepositories(mock))
	return router.NewRouter(s, handler.NewHandlers(s, services)), mock
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func expectText(t *testing.T, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, status, rec.Body.String())
	}
	if got := rec.Body.String(); got != body {
		t.Fatalf("body = %q, want %q", got, body)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextPlain) {
		t.Fatalf("content type = %q, want text/plain", ct)
	}
}

func TestAddTask(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(int64(7), "Buy milk").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_completed", "created_at"}).
			AddRow(int64(42), false, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)))

	rec := do(e, http.MethodPost, "/tasks/add", `{"taskName":"Buy milk","userId":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != float64(42) || body["userId"] != float64(7) ||
		body["taskName"] != "Buy milk" || body["isCompleted"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["createdAt"]; !ok {
		t.Fatalf("createdAt missing: %v", body)
	}
	if _, ok := body["category"]; ok {
		t.Fatalf("null category must be omitted: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAddTaskBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Request body is empty."},
		{"missing name", `{"userId":7}`, "Invalid task item data."},
		{"zero user", `{"taskName":"Buy milk","userId":0}`, "Invalid task item data."},
		{"wrong type", `{"taskName":"Buy milk","userId":"seven"}`, "Invalid task item data."},
		{"malformed", `{"taskName":`, "Invalid task item data."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, mock := newTestRouter(t, testConfig())
			expectText(t, do(e, http.MethodPost, "/tasks/add", tt.body), http.StatusBadRequest, tt.want)
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("store must not be called: %v", err)
			}
		})
	}
}

func TestAddTaskIgnoresContentType(t *testing.T) {
	for _, contentType := range []string{"", echo.MIMETextPlain, echo.MIMEApplicationForm} {
		t.Run("content type "+contentType, func(t *testing.T) {
			e, mock := newTestRouter(t, testConfig())
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
				WithArgs(int64(7), "Buy milk").
				WillReturnRows(pgxmock.NewRows([]string{"id", "is_completed", "created_at"}).
					AddRow(int64(42), false, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)))

			req := httptest.NewRequest(http.MethodPost, "/tasks/add", strings.NewReader(`{"taskName":"Buy milk","userId":7}`))
			if contentType != "" {
				req.Header.Set(echo.HeaderContentType, contentType)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestAddTaskEmptyChunkedBody(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/tasks/add", strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	expectText(t, rec, http.StatusBadRequest, "Request body is empty.")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store must not be called: %v", err)
	}
}

func TestAddTaskUnknownUser(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(int64(99), "Buy milk").
		WillReturnError(&pgconn.PgError{Code: "23503", TableName: "tasks", ColumnName: "user_id"})

	rec := do(e, http.MethodPost, "/tasks/add", `{"taskName":"Buy milk","userId":99}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
}

func TestListTasksByUser(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "task_name", "is_completed"}).
			AddRow(int64(1), "Buy milk", false))

	rec := do(e, http.MethodGet, "/tasks/user/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	want := `[{"id":1,"taskName":"Buy milk","isCompleted":false}]`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestListTasksByUserEmpty(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "task_name", "is_completed"}))

	rec := do(e, http.MethodGet, "/tasks/user/3", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("got %d %q, want 200 []", rec.Code, rec.Body.String())
	}
}

func TestListTasksInvalidUserID(t *testing.T) {
	for _, id := range []string{"0", "-4", "abc"} {
		e, mock := newTestRouter(t, testConfig())
		expectText(t, do(e, http.MethodGet, "/tasks/user/"+id, ""), http.StatusBadRequest, "Invalid UserId.")
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("store must not be called: %v", err)
		}
	}
}

func TestSetTaskCompleted(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET is_completed")).
		WithArgs(true, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET is_completed")).
		WithArgs(false, int64(6)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	rec := do(e, http.MethodPut, "/tasks/complete", `{"id":5,"isCompleted":true}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "true" {
		t.Fatalf("got %d %q, want 200 true", rec.Code, rec.Body.String())
	}

	expectText(t, do(e, http.MethodPut, "/tasks/complete", `{"id":6}`), http.StatusNotFound, "Task not found.")
	expectText(t, do(e, http.MethodPut, "/tasks/complete", `{"isCompleted":true}`), http.StatusBadRequest, "Invalid task item data.")
	expectText(t, do(e, http.MethodPut, "/tasks/complete", ""), http.StatusBadRequest, "Request body is empty.")
}

func TestDeleteTask(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	rec := do(e, http.MethodDelete, "/tasks/delete/8", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "true" {
		t.Fatalf("got %d %q, want 200 true", rec.Code, rec.Body.String())
	}
	expectText(t, do(e, http.MethodDelete, "/tasks/delete/8", ""), http.StatusNotFound, "Task not found.")
	expectText(t, do(e, http.MethodDelete, "/tasks/delete/x", ""), http.StatusBadRequest, "Invalid TaskId.")
}

func TestAddUser(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("alice", "alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "pw").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	rec := do(e, http.MethodPost, "/users/add", `{"userName":"alice","email":"alice@example.com","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	want := `{"id":11,"userName":"alice","email":"alice@example.com"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestAddUserDuplicateEmail(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("bob", "alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	rec := do(e, http.MethodPost, "/users/add", `{"userName":"bob","email":"alice@example.com","password":"pw"}`)
	expectText(t, rec, http.StatusConflict, "UserName or Email already exists.")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAddUserDuplicateRacesPastCheck(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("bob", "alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "alice@example.com", "pw").
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"})

	rec := do(e, http.MethodPost, "/users/add", `{"userName":"bob","email":"alice@example.com","password":"pw"}`)
	expectText(t, rec, http.StatusConflict, "UserName or Email already exists.")
}

func TestAddUserInvalid(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())
	expectText(t, do(e, http.MethodPost, "/users/add", `{"userName":"bob","email":" ","password":"pw"}`),
		http.StatusBadRequest, "Invalid user data.")
}

func TestUserExists(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("alice", nil).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	rec := do(e, http.MethodGet, "/users/exists?userName=alice", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "true" {
		t.Fatalf("got %d %q, want 200 true", rec.Code, rec.Body.String())
	}

	expectText(t, do(e, http.MethodGet, "/users/exists", ""), http.StatusBadRequest, "No user data provided.")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	e, mock := newTestRouter(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND password = $2")).
		WithArgs("alice@example.com", "pw").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_name"}).AddRow(int64(11), "alice"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND password = $2")).
		WithArgs("alice@example.com", "wrong").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND password = $2")).
		WithArgs("alice@example.com", "pw").
		WillReturnError(errors.New("connection reset by peer"))

	rec := do(e, http.MethodPost, "/users/authenticated", `{"email":"alice@example.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"id":11,"userName":"alice"}` {
		t.Fatalf("body = %s", got)
	}

	expectText(t, do(e, http.MethodPost, "/users/authenticated", `{"email":"alice@example.com","password":"wrong"}`),
		http.StatusUnauthorized, "Authentication failed.")

	rec = do(e, http.MethodPost, "/users/authenticated", `{"email":"alice@example.com","password":"pw"}`)
	expectText(t, rec, http.StatusInternalServerError, "Internal Server Error")
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal detail leaked: %q", rec.Body.String())
	}
}

func TestFunctionKey(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.FunctionKey = "s3cret"
	e, mock := newTestRouter(t, cfg)

	expectText(t, do(e, http.MethodGet, "/tasks/user/7", ""), http.StatusUnauthorized, "Unauthorized")
	expectText(t, do(e, http.MethodGet, "/tasks/user/7?code=nope", ""), http.StatusUnauthorized, "Unauthorized")

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "task_name", "is_completed"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "task_name", "is_completed"}))

	if rec := do(e, http.MethodGet, "/tasks/user/7?code=s3cret", ""); rec.Code != http.StatusOK {
		t.Fatalf("query key: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks/user/7", nil)
	req.Header.Set("x-functions-key", "s3cret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("header key: status = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1
	e, _ := newTestRouter(t, cfg)

	expectText(t, do(e, http.MethodGet, "/tasks/user/0", ""), http.StatusBadRequest, "Invalid UserId.")
	expectText(t, do(e, http.MethodGet, "/tasks/user/0", ""), http.StatusTooManyRequests, "Too Many Requests")
}

func TestRequestIDAndUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	expectText(t, rec, http.StatusNotFound, "Route not found")
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}
