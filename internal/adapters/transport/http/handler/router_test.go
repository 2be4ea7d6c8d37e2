package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/db/orm"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/credentials"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/jwt"
	appsvc "github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/library/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/db"
)

type testAPI struct {
	router *gin.Engine
	t      *testing.T
}

func newTestAPI(t *testing.T, tokens repo.TokenRepo, ready func(context.Context) error, opts ...func(*Deps)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	jwtUtil, err := jwt.NewJWTUtil(&config.Config{
		JWTKey:   "K",
		Issuer:   "WSEI",
		Audience: "WSEI",
		TokenTTL: 30 * time.Minute,
	})
	require.NoError(t, err)

	v := validator.New()
	log := zap.NewNop()
	authSvc := appsvc.New(credentials.NewStatic("test", "password", ""), tokens, jwtUtil, v, log)

	deps := Deps{
		Auth:           authSvc,
		Books:          service.NewBooks(orm.NewBookRepo(gdb), v, log),
		Authors:        service.NewAuthors(orm.NewAuthorRepo(gdb), v, log),
		Categories:     service.NewCategories(orm.NewCategoryRepo(gdb), v, log),
		Log:            log,
		AllowedOrigins: []string{"*"},
		LoginRPS:       100,
		LoginBurst:     100,
		Ready:          ready,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testAPI{router: NewRouter(deps), t: t}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login() string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "test", Password: "password"})
	require.Equal(a.t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

/* ───────────────────────────── auth ───────────────────────────── */

func TestLogin(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	before := time.Now()
	w := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "test", Password: "password"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.LoginResponse](t, w)
	require.Equal(t, "test", resp.Username)
	require.NotEmpty(t, resp.Token)
	require.WithinDuration(t, before.Add(30*time.Minute), resp.Expiry, 2*time.Second)

	w = api.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "bad", Password: "bad"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Empty(t, w.Body.String())

	w = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "test"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	api := newTestAPI(t, nil, nil, func(d *Deps) {
		d.LoginRPS = 0.1
		d.LoginBurst = 2
	})

	for i := 0; i < 2; i++ {
		w := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "bad", Password: "bad"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "test", Password: "password"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	for _, path := range []string{"/api/books", "/api/authors", "/api/categories", "/api/books/1"} {
		w := api.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
		require.Equal(t, "Missing Authorization Header", w.Body.String())
	}

	w := api.do(http.MethodGet, "/api/books", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Unauthorized: Invalid Token", w.Body.String())

	w = api.do(http.MethodGet, "/api/books", api.login(), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := newTestAPI(t, myRedisRepo.NewRedisTokenRepo(client), nil)
	token := api.login()

	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/auth/logout", token, nil).Code)

	w := api.do(http.MethodGet, "/api/books", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Unauthorized: Invalid Token", w.Body.String())

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/books", api.login(), nil).Code)
}

/* ───────────────────────────── catalog ───────────────────────────── */

func TestCatalog_RoundTrip(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	token := api.login()

	w := api.do(http.MethodPost, "/api/authors", token, model.Author{Name: "Frank Herbert"})
	require.Equal(t, http.StatusCreated, w.Code)
	author := decode[model.Author](t, w)
	require.Equal(t, "/api/authors/"+strconv.Itoa(author.ID), w.Header().Get("Location"))

	w = api.do(http.MethodPost, "/api/categories", token, model.Category{Name: "Science Fiction"})
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[model.Category](t, w)

	w = api.do(http.MethodPost, "/api/books", token, model.Book{Title: "Dune", AuthorID: author.ID, CategoryID: category.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	book := decode[model.Book](t, w)
	require.Equal(t, "/api/books/"+strconv.Itoa(book.ID), w.Header().Get("Location"))

	w = api.do(http.MethodGet, "/api/books", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]model.Book](t, w)
	require.Len(t, list, 1)
	require.Equal(t, "Frank Herbert", list[0].Author.Name)
	require.Equal(t, "Science Fiction", list[0].Category.Name)

	book.Title = "Dune Messiah"
	path := "/api/books/" + strconv.Itoa(book.ID)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPut, path, token, book).Code)

	w = api.do(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[model.Book](t, w)
	require.Equal(t, "Dune Messiah", got.Title)
	require.Equal(t, 2, got.Version)

	require.Equal(t, http.StatusConflict, api.do(http.MethodPut, path, token, book).Code, "stale version")

	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, path, token, nil).Code)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, token, nil).Code)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, token, nil).Code)

	w = api.do(http.MethodGet, "/api/books", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[[]model.Book](t, w))
}

func TestCatalog_Errors(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	token := api.login()

	w := api.do(http.MethodPost, "/api/authors", token, model.Author{Name: "a"})
	require.Equal(t, http.StatusCreated, w.Code)
	author := decode[model.Author](t, w)
	w = api.do(http.MethodPost, "/api/categories", token, model.Category{Name: "c"})
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[model.Category](t, w)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{"bad id", http.MethodGet, "/api/books/abc", nil, http.StatusBadRequest},
		{"zero id", http.MethodGet, "/api/books/0", nil, http.StatusBadRequest},
		{"missing book", http.MethodGet, "/api/books/77", nil, http.StatusNotFound},
		{"missing author ref", http.MethodPost, "/api/books", model.Book{Title: "x", AuthorID: 99, CategoryID: category.ID}, http.StatusBadRequest},
		{"duplicate id", http.MethodPost, "/api/authors", model.Author{ID: author.ID, Name: "dup"}, http.StatusConflict},
		{"id mismatch", http.MethodPut, "/api/authors/" + strconv.Itoa(author.ID), model.Author{ID: author.ID + 1, Name: "x"}, http.StatusNotFound},
		{"update missing", http.MethodPut, "/api/authors/500", model.Author{ID: 500, Name: "x"}, http.StatusNotFound},
		{"malformed json", http.MethodPost, "/api/authors", "not an object", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(tc.method, tc.path, token, tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}

	w = api.do(http.MethodPost, "/api/books", token, model.Book{Title: "t", AuthorID: author.ID, CategoryID: category.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodDelete, "/api/authors/"+strconv.Itoa(author.ID), token, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

/* ───────────────────────────── operational ───────────────────────────── */

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	w := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)

	w = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "library_http_requests_total")
}

func TestHealth_Unavailable(t *testing.T) {
	api := newTestAPI(t, nil, func(context.Context) error { return errors.New("db down") })

	w := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
