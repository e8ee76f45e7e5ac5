package routes

import "payroll/client/session"

// Action is the guard's verdict for a single navigation pass.
type Action int

const (
	// ShowLoading renders a loading placeholder and nothing else; no
	// redirect may fire before bootstrap resolves.
	ShowLoading Action = iota
	// Render shows the requested destination.
	Render
	// Redirect navigates to Decision.Target, replacing history so the back
	// button cannot loop.
	Redirect
)

type Decision struct {
	Action Action
	// Path is the destination actually being rendered when Action is Render.
	Path   string
	Target string
}

// Resolve decides what a navigation to path shows given the current session
// snapshot.
//
// Order of precedence: normalization ("/" and unmatched paths collapse to
// the dashboard), then the loading gate, then authentication, then the
// exact-match role requirement.
func Resolve(path string, snap session.Snapshot) Decision {
	rule, known := Lookup(path)
	if !known {
		return Decision{Action: Redirect, Target: PathDashboard}
	}

	if rule.Public {
		// An authenticated user has no business on the login screen.
		if path == PathLogin && snap.State == session.StateAuthenticated {
			return Decision{Action: Redirect, Target: PathDashboard}
		}
		return Decision{Action: Render, Path: path}
	}

	switch snap.State {
	case session.StateInitializing:
		return Decision{Action: ShowLoading}
	case session.StateAnonymous:
		return Decision{Action: Redirect, Target: PathLogin}
	}

	if rule.RequiredRole != "" {
		if snap.Identity == nil || snap.Identity.Role != rule.RequiredRole {
			return Decision{Action: Redirect, Target: PathUnauthorized}
		}
	}
	return Decision{Action: Render, Path: path}
}
