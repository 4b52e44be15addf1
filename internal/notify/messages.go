package notify

import "fmt"

// Auth groups the session-related toasts.
type Auth struct {
	d *Dispatcher
}

// AuthMessages returns the auth toast helpers for a dispatcher.
func AuthMessages(d *Dispatcher) *Auth {
	return &Auth{d: d}
}

// LoginSuccess announces a completed login.
func (a *Auth) LoginSuccess(name string) {
	message := "You are now signed in"
	if name != "" {
		message = fmt.Sprintf("Welcome back, %s", name)
	}
	a.d.Success("Signed in", message)
}

// LoginError announces a rejected login.
func (a *Auth) LoginError(message string) {
	if message == "" {
		message = "Could not sign you in"
	}
	a.d.Error("Sign-in failed", message)
}

// LogoutSuccess announces a completed logout.
func (a *Auth) LogoutSuccess() {
	a.d.Success("Signed out", "You have been signed out")
}

// SessionExpired announces a 401-triggered token clear.
func (a *Auth) SessionExpired() {
	a.d.Warning("Session expired", "Please sign in again")
}

// Templates groups the template-related toasts.
type Templates struct {
	d *Dispatcher
}

// TemplateMessages returns the template toast helpers for a dispatcher.
func TemplateMessages(d *Dispatcher) *Templates {
	return &Templates{d: d}
}

// CreateSuccess announces a created template.
func (t *Templates) CreateSuccess(name string) {
	t.d.Success("Template created", named(name, "Template %q created", "Template created"))
}

// UpdateSuccess announces an updated template.
func (t *Templates) UpdateSuccess(name string) {
	t.d.Success("Template updated", named(name, "Template %q updated", "Template updated"))
}

// DeleteSuccess announces a deleted template.
func (t *Templates) DeleteSuccess(name string) {
	t.d.Success("Template deleted", named(name, "Template %q deleted", "Template deleted"))
}

// CreateError announces a failed create.
func (t *Templates) CreateError(message string) {
	t.d.Error("Create failed", fallback(message, "Could not create the template"))
}

// UpdateError announces a failed update.
func (t *Templates) UpdateError(message string) {
	t.d.Error("Update failed", fallback(message, "Could not update the template"))
}

// DeleteError announces a failed delete.
func (t *Templates) DeleteError(message string) {
	t.d.Error("Delete failed", fallback(message, "Could not delete the template"))
}

// LoadError announces a failed fetch.
func (t *Templates) LoadError(message string) {
	t.d.Error("Load failed", fallback(message, "Could not load templates"))
}

func named(name, withName, without string) string {
	if name != "" {
		return fmt.Sprintf(withName, name)
	}
	return without
}

func fallback(message, generic string) string {
	if message == "" {
		return generic
	}
	return message
}
