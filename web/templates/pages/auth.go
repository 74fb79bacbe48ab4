package pages

import (
	"github.com/a-h/templ"
)

// CredentialsForm holds the values echoed back into the login and register forms.
type CredentialsForm struct {
	Username string
	Error    string
}

// Login renders the login form.
func Login(form CredentialsForm) templ.Component {
	return credentialsPage("Login", "/login", "Log in", form, `No account yet? <a href="/register">Register</a>`)
}

// Register renders the registration form.
func Register(form CredentialsForm) templ.Component {
	return credentialsPage("Register", "/register", "Create account", form, `Already registered? <a href="/login">Log in</a>`)
}

func credentialsPage(title, action, submit string, form CredentialsForm, footer string) templ.Component {
	return layout(title, nil, func(w *writer) {
		w.raw(`<section class="card"><h1>`)
		w.text(title)
		w.raw(`</h1>`)
		w.alert(form.Error)
		w.rawf(`<form method="post" action="%s">`, action)
		w.raw(`<label for="username">Username</label>`)
		w.raw(`<input id="username" name="username" type="text" autocomplete="username" required value="`)
		w.text(form.Username)
		w.raw(`">`)
		w.raw(`<label for="password">Password</label>`)
		w.raw(`<input id="password" name="password" type="password" required>`)
		w.raw(`<button type="submit">`)
		w.text(submit)
		w.raw(`</button></form><p class="muted">`)
		w.raw(footer)
		w.raw(`</p></section>`)
	})
}
