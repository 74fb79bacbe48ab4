package pages

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// Error renders a generic error page for the given status code.
func Error(status int) templ.Component {
	return layout(http.StatusText(status), nil, func(w *writer) {
		w.raw(`<section class="card"><h1>`)
		w.text(strconv.Itoa(status))
		w.raw(` `)
		w.text(http.StatusText(status))
		w.raw(`</h1><p>Something went wrong. Please try again later.</p>`)
		w.raw(`<p><a href="/">Back to the attendance page</a></p></section>`)
	})
}
