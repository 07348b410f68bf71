package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/memory"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/session"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
	"github.com/oksasatya/hocus-focus/internal/router"
	"github.com/oksasatya/hocus-focus/internal/router/modules"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
	"github.com/oksasatya/hocus-focus/pkg/validation"
)

type envelope struct {
	Status    int             `json:"status"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	store  *store.Store
}

func cheapHash(p string) (string, error) {
	return helpers.HashPasswordWithCost(p, bcrypt.MinCost)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	ctx := context.Background()
	st := store.New(memory.NewBackend(), nil, store.WithPasswordHasher(cheapHash))
	require.NoError(t, st.InitAll(ctx))
	require.NoError(t, st.SeedAll(ctx))

	users := application.NewUserService(st.Users, st.Activities, st.Participants,
		session.NewMemoryStore(), helpers.NewJWTManager("handler-test", time.Hour), time.Hour, nil)
	users.HashPassword = cheapHash
	acts := application.NewActivityService(st.Users, st.Activities, st.Participants, nil)
	mem := application.NewMembershipService(st.Users, st.Activities, st.Participants, nil, nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(r)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(users, nil, "", false), users, nil))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(users, nil)))
	reg.Add(modules.NewActivityModule(
		handlers.NewActivityHandler(acts, mem, nil),
		handlers.NewMembershipHandler(mem, nil),
		users, nil,
	))
	reg.Add(modules.NewDevModule(handlers.NewDevHandler(st, nil), nil))
	reg.RegisterAll()

	return &testServer{engine: r, store: st}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (s *testServer) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, string(env.Error))
	for _, c := range rec.Result().Cookies() {
		if c.Name == helpers.SessionCookie {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestSignupLoginMe(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/signup", map[string]string{
		"name": "Ilona", "surname": "Aalto", "email": "ilona@aalto.fi",
		"password": "lumi2026", "confirmPassword": "lumi2026",
	})
	require.Equal(t, http.StatusCreated, rec.Code, string(env.Error))
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotEmpty(t, env.RequestID)

	cookie := s.login(t, "ilona@aalto.fi", "lumi2026")
	assert.True(t, cookie.HttpOnly)

	rec, env = s.do(t, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ilona@aalto.fi", me.Email)

	rec, _ = s.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupErrors(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/signup", map[string]string{
		"name": "A", "surname": "B", "email": "admin@hocus-focus.fi",
		"password": "secret1", "confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	rec, env = s.do(t, http.MethodPost, "/api/signup", map[string]string{
		"name": "A", "surname": "B", "email": "new@x.fi",
		"password": "secret1", "confirmPassword": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "confirmPassword")
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "admin@hocus-focus.fi", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", env.Message)
	assert.Empty(t, rec.Result().Cookies())
}

func TestListActivities(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/activities?category=yoga", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 7)

	rec, _ = s.do(t, http.MethodGet, "/api/activities?status=paused", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/activities/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []struct {
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &groups))
	require.Len(t, groups, 3)
	assert.Equal(t, "hiking", groups[0].Category)
}

func TestActivityDetailMembership(t *testing.T) {
	s := newTestServer(t)

	type detail struct {
		Creator *struct {
			ID string `json:"id"`
		} `json:"creator"`
		Participants []struct {
			ID string `json:"id"`
		} `json:"participants"`
		Membership string `json:"membership"`
	}

	rec, env := s.do(t, http.MethodGet, "/api/activities/hiking-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d detail
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "anonymous", d.Membership)
	require.NotNil(t, d.Creator)
	assert.Equal(t, "user-3", d.Creator.ID)
	assert.Len(t, d.Participants, 2)

	cookie := s.login(t, "sanna.virtanen@email.com", "password123")
	_, env = s.do(t, http.MethodGet, "/api/activities/hiking-1", nil, cookie)
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "member", d.Membership)

	rec, _ = s.do(t, http.MethodGet, "/api/activities/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleMembership(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/activities/hiking-1/toggle", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := s.login(t, "laura.heinonen@email.com", "password123")
	rec, env := s.do(t, http.MethodPost, "/api/activities/hiking-1/toggle", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, string(env.Error))
	var res struct {
		State        string `json:"state"`
		Participants []struct {
			ID string `json:"id"`
		} `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "member", res.State)
	assert.Len(t, res.Participants, 3)

	rec, env = s.do(t, http.MethodGet, "/api/activities/hiking-1/membership", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"state":"member"`)

	rec, _ = s.do(t, http.MethodDelete, "/api/activities/hiking-1/join", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	ok, err := s.store.Participants.IsMember(context.Background(), "user-5", "hiking-1")
	require.NoError(t, err)
	assert.False(t, ok)

	creator := s.login(t, "aino.makinen@email.com", "password123")
	rec, _ = s.do(t, http.MethodPost, "/api/activities/hiking-1/join", nil, creator)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUpdateDeleteActivity(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t, "katri.lehtonen@email.com", "password123")

	rec, env := s.do(t, http.MethodPost, "/api/activities", map[string]any{
		"title": "Baby Bootcamp", "description": "Stroller intervals", "category": "fitness",
		"location": "Kisapuisto", "duration": 40, "numParticipants": 8,
		"date": "2026-06-01", "hour": "08:30",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, string(env.Error))
	var created struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		CreatorID string `json:"creatorId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "user-4", created.CreatorID)

	rec, env = s.do(t, http.MethodGet, "/api/activities?category=fitness", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), created.ID)

	other := s.login(t, "mia.korhonen@email.com", "password123")
	rec, _ = s.do(t, http.MethodPut, "/api/activities/"+created.ID+"/status", map[string]string{"status": "cancelled"}, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/activities/"+created.ID+"/status", map[string]string{"status": "cancelled"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/activities/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/users/user-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "password")
	var p struct {
		Created []json.RawMessage `json:"created"`
		Joined  []json.RawMessage `json:"joined"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Len(t, p.Created, 2)
	assert.Len(t, p.Joined, 3)

	rec, _ = s.do(t, http.MethodGet, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDevRoutes(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodDelete, "/api/dev/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":0,"activities":0,"participants":0}`, string(env.Data))

	rec, env = s.do(t, http.MethodPost, "/api/dev/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":10,"activities":15,"participants":9}`, string(env.Data))

	require.NoError(t, s.store.Participants.Remove(context.Background(), "user-1", "yoga-1"))
	rec, env = s.do(t, http.MethodPost, "/api/dev/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":10,"activities":15,"participants":9}`, string(env.Data))

	rec, env = s.do(t, http.MethodGet, "/api/dev/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":10,"activities":15,"participants":9}`, string(env.Data))
}
