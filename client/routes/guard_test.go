package routes

import (
	"testing"

	"payroll/client/session"
)

func snap(state session.State, role session.Role) session.Snapshot {
	s := session.Snapshot{State: state, Loading: state == session.StateInitializing}
	if state == session.StateAuthenticated {
		s.Identity = &session.Identity{ID: 1, Email: "u@x.y", Role: role}
	}
	return s
}

func TestResolve(t *testing.T) {
	admin := snap(session.StateAuthenticated, session.RoleAdmin)
	employee := snap(session.StateAuthenticated, session.RoleEmployee)
	anonymous := snap(session.StateAnonymous, "")
	initializing := snap(session.StateInitializing, "")

	tests := []struct {
		name   string
		path   string
		snap   session.Snapshot
		action Action
		target string
	}{
		{"root collapses to dashboard", "/", admin, Redirect, PathDashboard},
		{"unknown path collapses to dashboard", "/no-such-page", admin, Redirect, PathDashboard},
		{"unknown path collapses even while anonymous", "/no-such-page", anonymous, Redirect, PathDashboard},

		{"initializing shows loading", PathDashboard, initializing, ShowLoading, ""},
		{"initializing never redirects on admin pages", "/employees", initializing, ShowLoading, ""},

		{"anonymous goes to login", PathDashboard, anonymous, Redirect, PathLogin},
		{"anonymous admin page goes to login first", "/salary", anonymous, Redirect, PathLogin},

		{"login renders while anonymous", PathLogin, anonymous, Render, ""},
		{"login redirects when authenticated", PathLogin, employee, Redirect, PathDashboard},
		{"login renders even while initializing", PathLogin, initializing, Render, ""},
		{"unauthorized is public", PathUnauthorized, anonymous, Render, ""},

		{"shared page renders for employee", "/attendance", employee, Render, ""},
		{"shared page renders for admin", "/attendance", admin, Render, ""},
		{"settings renders for employee", "/settings", employee, Render, ""},

		{"admin page renders for admin", "/employees", admin, Render, ""},
		{"admin page rejects employee", "/employees", employee, Redirect, PathUnauthorized},
		{"departments rejects employee", "/departments", employee, Redirect, PathUnauthorized},
		{"compliance rejects employee", "/compliance", employee, Redirect, PathUnauthorized},
		{"salary rejects employee", "/salary", employee, Redirect, PathUnauthorized},
		{"analytics rejects employee", "/analytics", employee, Redirect, PathUnauthorized},

		{"payslips renders for employee", "/payslips", employee, Render, ""},
		{"ai assistant renders for employee", "/ai-assistant", employee, Render, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := Resolve(tc.path, tc.snap)
			if decision.Action != tc.action {
				t.Fatalf("action: got %v want %v", decision.Action, tc.action)
			}
			if tc.action == Redirect && decision.Target != tc.target {
				t.Fatalf("target: got %q want %q", decision.Target, tc.target)
			}
			if tc.action == Render && decision.Path != tc.path {
				t.Fatalf("rendered path: got %q want %q", decision.Path, tc.path)
			}
		})
	}
}

func TestResolveMissingIdentityOnRoleRoute(t *testing.T) {
	// Authenticated state with a nil identity must fail closed.
	decision := Resolve("/employees", session.Snapshot{State: session.StateAuthenticated})
	if decision.Action != Redirect || decision.Target != PathUnauthorized {
		t.Fatalf("expected redirect to unauthorized, got %+v", decision)
	}
}
