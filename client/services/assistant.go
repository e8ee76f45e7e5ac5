package services

import (
	"context"
	"fmt"

	"payroll/client/api"
)

// Assistant backs the AI chat page. Answers are generated server-side; the
// client just relays questions and renders text.
type Assistant struct {
	api *api.Client
}

func NewAssistant(c *api.Client) *Assistant { return &Assistant{api: c} }

type AssistantAnswer struct {
	Answer string `json:"answer"`
}

func (s *Assistant) Ask(ctx context.Context, question string) (string, error) {
	var out AssistantAnswer
	err := s.api.Post(ctx, "/api/ai/ask-question", map[string]string{"question": question}, &out)
	return out.Answer, err
}

func (s *Assistant) MySalaryInsights(ctx context.Context) (string, error) {
	var out AssistantAnswer
	err := s.api.Get(ctx, "/api/ai/my-salary-insights", &out)
	return out.Answer, err
}

func (s *Assistant) SalaryInsights(ctx context.Context, employeeID int64) (string, error) {
	var out AssistantAnswer
	err := s.api.Get(ctx, fmt.Sprintf("/api/ai/salary-insights/%d", employeeID), &out)
	return out.Answer, err
}

func (s *Assistant) MyTaxAdvice(ctx context.Context) (string, error) {
	var out AssistantAnswer
	err := s.api.Get(ctx, "/api/ai/my-tax-advice", &out)
	return out.Answer, err
}

func (s *Assistant) TaxAdvice(ctx context.Context, employeeID int64) (string, error) {
	var out AssistantAnswer
	err := s.api.Get(ctx, fmt.Sprintf("/api/ai/tax-advice/%d", employeeID), &out)
	return out.Answer, err
}
