// Package routes holds the static access policy and the per-navigation
// guard. Pages never re-implement role checks; this is the only place a
// route's requirement is declared.
package routes

import "payroll/client/session"

// Common paths referenced across the client.
const (
	PathLogin        = "/login"
	PathDashboard    = "/dashboard"
	PathUnauthorized = "/unauthorized"
)

// Rule is a single route's access declaration. A route either requires
// nothing beyond authentication, or exactly one named role. Role sets and
// hierarchies are deliberately not supported; widening this is a contract
// change, not a bug fix.
type Rule struct {
	Public       bool
	RequiredRole session.Role // empty means any authenticated role
}

// policy maps every known path to its requirement. Paths not present here
// are unmatched and resolve to the dashboard.
var policy = map[string]Rule{
	PathDashboard:       {},
	"/employees":        {RequiredRole: session.RoleAdmin},
	"/departments":      {RequiredRole: session.RoleAdmin},
	"/attendance":       {},
	"/leave-management": {},
	"/documents":        {},
	"/compliance":       {RequiredRole: session.RoleAdmin},
	"/salary":           {RequiredRole: session.RoleAdmin},
	"/payslips":         {},
	"/analytics":        {RequiredRole: session.RoleAdmin},
	"/ai-assistant":     {},
	"/profile":          {},
	"/settings":         {},
	PathUnauthorized:    {Public: true},
	PathLogin:           {Public: true},
}

// Lookup returns the rule for a path and whether the path is declared.
func Lookup(path string) (Rule, bool) {
	rule, ok := policy[path]
	return rule, ok
}
