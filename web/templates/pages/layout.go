package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/jon4hz/attendance/internal/api/models"
)

// writer collects the first write error so page bodies stay readable.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) rawf(format string, args ...any) {
	w.raw(fmt.Sprintf(format, args...))
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) alert(msg string) {
	if msg == "" {
		return
	}
	w.raw(`<p class="alert" role="alert">`)
	w.text(msg)
	w.raw(`</p>`)
}

// layout renders the page chrome around body.
func layout(title string, user *models.User, body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(title + " | Attendance")
		w.raw(`</title><link rel="stylesheet" href="/static/style.css"></head><body>`)

		w.raw(`<nav class="navbar"><span class="brand">Attendance</span>`)
		if user != nil {
			w.raw(`<a href="/">Clock</a><a href="/history">History</a>`)
			w.raw(`<span class="user">`)
			w.text(user.Username)
			if user.IsAdmin {
				w.raw(` <span class="badge">admin</span>`)
			}
			w.raw(`</span><a href="/logout">Logout</a>`)
		} else {
			w.raw(`<a href="/login">Login</a><a href="/register">Register</a>`)
		}
		w.raw(`</nav><main>`)

		body(w)

		w.raw(`</main></body></html>`)
		return w.err
	})
}
