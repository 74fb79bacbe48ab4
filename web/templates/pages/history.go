package pages

import (
	"github.com/a-h/templ"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/jon4hz/attendance/web/templates/components"
)

// History renders the attendance records visible to the user.
func History(user *models.User, records []models.Record) templ.Component {
	return layout("History", user, func(w *writer) {
		w.raw(`<section class="card wide"><h1>`)
		if user.IsAdmin {
			w.raw(`All attendance records`)
		} else {
			w.raw(`Your attendance records`)
		}
		w.raw(`</h1>`)

		if len(records) == 0 {
			w.raw(`<p class="muted">No records yet.</p></section>`)
			return
		}

		w.raw(`<table><thead><tr><th>User</th><th>Check-in</th><th>Check-out</th><th>Hours</th></tr></thead><tbody>`)
		for _, r := range records {
			if r.IsOpen() {
				w.raw(`<tr class="open"><td>`)
			} else {
				w.raw(`<tr><td>`)
			}
			w.text(r.Username)
			w.raw(`</td><td>`)
			w.text(components.FormatTimestamp(r.CheckIn))
			w.raw(`</td><td>`)
			w.text(components.FormatOptionalTimestamp(r.CheckOut))
			w.raw(`</td><td>`)
			if r.HasHours {
				w.text(components.FormatHours(r.Hours))
			}
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table></section>`)
	})
}
