// Package nav projects the current identity onto the sidebar menu. It holds
// no state of its own: the filtered list is derived from the static
// declaration below and whatever identity the session store reports.
package nav

import (
	"payroll/client/session"
)

// Entry is one statically declared menu item. Declaration order is the
// intended visual order and is preserved by filtering.
type Entry struct {
	Path  string
	Label string
	Icon  string
	Roles []session.Role
}

// Menu is the full sidebar, in display order. Settings lives in the header
// dropdown, not here.
var Menu = []Entry{
	{Path: "/dashboard", Label: "Dashboard", Icon: "gauge", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/employees", Label: "Employees", Icon: "users", Roles: []session.Role{session.RoleAdmin}},
	{Path: "/departments", Label: "Departments", Icon: "building", Roles: []session.Role{session.RoleAdmin}},
	{Path: "/attendance", Label: "Attendance", Icon: "clock", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/leave-management", Label: "Leave Management", Icon: "calendar", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/documents", Label: "Document Management", Icon: "folder", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/compliance", Label: "Compliance Reports", Icon: "shield", Roles: []session.Role{session.RoleAdmin}},
	{Path: "/salary", Label: "Salary Management", Icon: "currency", Roles: []session.Role{session.RoleAdmin}},
	{Path: "/payslips", Label: "Payslips", Icon: "invoice", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/analytics", Label: "Analytics", Icon: "chart", Roles: []session.Role{session.RoleAdmin}},
	{Path: "/ai-assistant", Label: "AI Assistant", Icon: "robot", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	{Path: "/profile", Label: "My Profile", Icon: "user", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
}

// ForSnapshot returns the menu entries the snapshot's identity may reach, in
// declared order. An anonymous or initializing session yields nil; the
// surface is never rendered in that state, but it must not crash either.
func ForSnapshot(snap session.Snapshot) []Entry {
	if snap.State != session.StateAuthenticated || snap.Identity == nil {
		return nil
	}
	return ForRole(snap.Identity.Role)
}

// ForRole filters the static menu for a single role.
func ForRole(role session.Role) []Entry {
	var out []Entry
	for _, entry := range Menu {
		for _, allowed := range entry.Roles {
			if allowed == role {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}
