package nav

import (
	"testing"

	"payroll/client/session"
)

func TestMenuHasTwelveEntriesInOrder(t *testing.T) {
	if len(Menu) != 12 {
		t.Fatalf("expected 12 menu entries, got %d", len(Menu))
	}
	want := []string{
		"/dashboard", "/employees", "/departments", "/attendance",
		"/leave-management", "/documents", "/compliance", "/salary",
		"/payslips", "/analytics", "/ai-assistant", "/profile",
	}
	for i, entry := range Menu {
		if entry.Path != want[i] {
			t.Fatalf("entry %d: got %q want %q", i, entry.Path, want[i])
		}
	}
}

func TestForRoleAdminSeesEverything(t *testing.T) {
	entries := ForRole(session.RoleAdmin)
	if len(entries) != len(Menu) {
		t.Fatalf("expected admin to see all %d entries, got %d", len(Menu), len(entries))
	}
}

func TestForRoleEmployeeSubset(t *testing.T) {
	entries := ForRole(session.RoleEmployee)
	want := []string{
		"/dashboard", "/attendance", "/leave-management", "/documents",
		"/payslips", "/ai-assistant", "/profile",
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d employee entries, got %d", len(want), len(entries))
	}
	for i, entry := range entries {
		if entry.Path != want[i] {
			t.Fatalf("entry %d: got %q want %q", i, entry.Path, want[i])
		}
	}
}

func TestForSnapshotUnauthenticated(t *testing.T) {
	if entries := ForSnapshot(session.Snapshot{State: session.StateAnonymous}); entries != nil {
		t.Fatalf("expected nil menu while anonymous, got %v", entries)
	}
	if entries := ForSnapshot(session.Snapshot{State: session.StateInitializing}); entries != nil {
		t.Fatalf("expected nil menu while initializing, got %v", entries)
	}
	if entries := ForSnapshot(session.Snapshot{State: session.StateAuthenticated}); entries != nil {
		t.Fatalf("expected nil menu for authenticated snapshot without identity, got %v", entries)
	}
}
