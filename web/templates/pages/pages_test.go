package pages

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestLogin_EscapesInput(t *testing.T) {
	html := render(t, Login(CredentialsForm{Username: `<script>"x"`, Error: "invalid username or password"}))

	assert.Contains(t, html, `action="/login"`)
	assert.Contains(t, html, "invalid username or password")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRegister(t *testing.T) {
	html := render(t, Register(CredentialsForm{}))

	assert.Contains(t, html, `action="/register"`)
	assert.NotContains(t, html, `role="alert"`)
}

func TestHome(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}
	in := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	out := in.Add(8*time.Hour + 30*time.Minute)

	t.Run("no record", func(t *testing.T) {
		html := render(t, Home(user, models.Status{}, ""))
		assert.Contains(t, html, "Hello, alice")
		assert.Contains(t, html, "not checked in yet")
		assert.Contains(t, html, `value="check_in"`)
		assert.Contains(t, html, `value="check_out"`)
	})

	t.Run("open record", func(t *testing.T) {
		html := render(t, Home(user, models.Status{Record: &models.Record{CheckIn: in}}, ""))
		assert.Contains(t, html, "Checked in since")
		assert.Contains(t, html, "2024-01-01 09:00:00")
		assert.NotContains(t, html, "Hours worked")
	})

	t.Run("closed record", func(t *testing.T) {
		status := models.Status{Record: &models.Record{CheckIn: in, CheckOut: &out, Hours: 8.5, HasHours: true}}
		html := render(t, Home(user, status, "already checked in"))
		assert.Contains(t, html, "2024-01-01 17:30:00")
		assert.Contains(t, html, `<dd class="hours">8.5</dd>`)
		assert.Contains(t, html, "already checked in")
	})
}

func TestHistory(t *testing.T) {
	in := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	out := in.Add(time.Hour)
	records := []models.Record{
		{ID: 2, Username: "bob", CheckIn: in},
		{ID: 1, Username: "alice", CheckIn: in, CheckOut: &out, Hours: 1, HasHours: true},
	}

	html := render(t, History(&models.User{Username: "admin", IsAdmin: true}, records))
	assert.Contains(t, html, "All attendance records")
	assert.Contains(t, html, "<td>bob</td>")
	assert.Contains(t, html, "<td>—</td>")
	assert.Less(t, strings.Index(html, "bob"), strings.Index(html, "<td>alice</td>"))

	html = render(t, History(&models.User{Username: "alice"}, nil))
	assert.Contains(t, html, "Your attendance records")
	assert.Contains(t, html, "No records yet.")
}

func TestError(t *testing.T) {
	html := render(t, Error(http.StatusInternalServerError))
	assert.Contains(t, html, "500 Internal Server Error")
}
