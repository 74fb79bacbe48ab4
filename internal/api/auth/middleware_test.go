package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	s.router.Use(sessions.Sessions("test_session", store))

	s.router.GET("/set", func(c *gin.Context) {
		session := sessions.Default(c)
		SetSessionUser(session, &models.User{ID: 42, Username: "alice", IsAdmin: true})
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	s.router.GET("/set-int", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUserID, 7)
		session.Set(SessionUsername, "bob")
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	s.router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "admin": user.IsAdmin})
	})
}

func (s *MiddlewareTestSuite) get(target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestRequireAuth_NoSession() {
	w := s.get("/protected", nil)

	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestRequireAuth_WithSession() {
	set := s.get("/set", nil)
	w := s.get("/protected", set.Result().Cookies())

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"id":42,"username":"alice","admin":true}`, w.Body.String())
}

func (s *MiddlewareTestSuite) TestRequireAuth_IntUserID() {
	set := s.get("/set-int", nil)
	w := s.get("/protected", set.Result().Cookies())

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"id":7,"username":"bob","admin":false}`, w.Body.String())
}
