package services

import (
	"context"

	"payroll/client/api"
	"payroll/client/session"
)

// Profile backs the profile page. A successful update is merged back into
// the session store so the whole tree sees the new identity.
type Profile struct {
	api     *api.Client
	session *session.Store
}

func NewProfile(c *api.Client, store *session.Store) *Profile {
	return &Profile{api: c, session: store}
}

type ProfileInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

func (s *Profile) Get(ctx context.Context) (Employee, error) {
	var out Employee
	err := s.api.Get(ctx, "/api/employee/profile", &out)
	return out, err
}

func (s *Profile) Update(ctx context.Context, input ProfileInput) (Employee, error) {
	var out Employee
	if err := s.api.Put(ctx, "/api/employee/profile", input, &out); err != nil {
		return Employee{}, err
	}
	// Ignore ErrNotAuthenticated: a 401 during the update already tore the
	// session down and there is nothing left to merge into.
	_ = s.session.UpdateIdentity(session.Patch{FullName: &out.FullName})
	return out, nil
}
