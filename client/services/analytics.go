package services

import (
	"context"
	"fmt"

	"payroll/client/api"
)

// Analytics backs the admin analytics page. Chart rendering is the page's
// concern; this only fetches the numbers.
type Analytics struct {
	api *api.Client
}

func NewAnalytics(c *api.Client) *Analytics { return &Analytics{api: c} }

func (s *Analytics) Summary(ctx context.Context) (AnalyticsSummary, error) {
	var out AnalyticsSummary
	err := s.api.Get(ctx, "/api/analytics/summary", &out)
	return out, err
}

func (s *Analytics) DepartmentShares(ctx context.Context) ([]DepartmentShare, error) {
	var out []DepartmentShare
	err := s.api.Get(ctx, "/api/analytics/departments", &out)
	return out, err
}

func (s *Analytics) MonthlyPayroll(ctx context.Context, year int) ([]MonthlyPayroll, error) {
	var out []MonthlyPayroll
	err := s.api.Get(ctx, fmt.Sprintf("/api/analytics/payroll/%d", year), &out)
	return out, err
}

// Compliance backs the admin compliance reporting page.
type Compliance struct {
	api *api.Client
}

func NewCompliance(c *api.Client) *Compliance { return &Compliance{api: c} }

func (s *Compliance) Report(ctx context.Context, year int) (ComplianceReport, error) {
	var out ComplianceReport
	err := s.api.Get(ctx, fmt.Sprintf("/api/compliance/report/%d", year), &out)
	return out, err
}
