package tests

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"charityevents/models"
	"charityevents/routes"
	"charityevents/tests/mocks"
)

type testDeps struct {
	s      *gin.Engine
	events *mocks.MockEventRepo
	regs   *mocks.MockRegRepo
	admins *mocks.MockAdminRepo
}

func newTestServer(t *testing.T) testDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	events := &mocks.MockEventRepo{Items: map[int64]models.Event{}}
	regs := &mocks.MockRegRepo{Events: events}
	admins := &mocks.MockAdminRepo{Admins: map[string]models.Admin{
		"admin@example.com": {ID: 1, Email: "admin@example.com", Password: "secret"},
	}}

	s := gin.New()
	routes.RegisterRoutes(s, events, regs, admins, rdb, nil)

	return testDeps{s: s, events: events, regs: regs, admins: admins}
}

func req(s *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", token)
	}
	s.ServeHTTP(w, r)
	return w
}

func intPtr(n int) *int { return &n }

var errForced = errors.New("forced store failure")
