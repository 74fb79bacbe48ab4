package pages

import (
	"github.com/a-h/templ"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/jon4hz/attendance/web/templates/components"
)

// Home renders the attendance page with the latest record and the clock buttons.
func Home(user *models.User, status models.Status, errMsg string) templ.Component {
	return layout("Attendance", user, func(w *writer) {
		w.raw(`<section class="card"><h1>Hello, `)
		w.text(user.Username)
		w.raw(`</h1>`)
		w.alert(errMsg)

		record := status.Record
		switch {
		case record == nil:
			w.raw(`<p class="status">You have not checked in yet.</p>`)
		case record.IsOpen():
			w.raw(`<p class="status open">Checked in since <time>`)
			w.text(components.FormatTimestamp(record.CheckIn))
			w.raw(`</time> (`)
			w.text(components.FormatRelativeTime(record.CheckIn))
			w.raw(`)</p>`)
		default:
			w.raw(`<dl class="status closed"><dt>Check-in</dt><dd>`)
			w.text(components.FormatTimestamp(record.CheckIn))
			w.raw(`</dd><dt>Check-out</dt><dd>`)
			w.text(components.FormatOptionalTimestamp(record.CheckOut))
			w.raw(`</dd>`)
			if record.HasHours {
				w.raw(`<dt>Hours worked</dt><dd class="hours">`)
				w.text(components.FormatHours(record.Hours))
				w.raw(`</dd>`)
			}
			w.raw(`</dl>`)
		}

		w.raw(`<form method="post" action="/" class="actions">`)
		w.raw(`<button type="submit" name="action" value="check_in">Check in</button>`)
		w.raw(`<button type="submit" name="action" value="check_out">Check out</button>`)
		w.raw(`</form></section>`)
	})
}
