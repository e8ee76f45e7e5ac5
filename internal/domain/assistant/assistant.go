// Package assistant answers payroll questions through an external generative
// model API, grounding salary and tax prompts in the employee's own records.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"payroll/internal/domain/salary"
)

var (
	ErrNotConfigured = errors.New("assistant is not configured")
	ErrEmptyQuestion = errors.New("question is required")
	ErrUpstream      = errors.New("assistant upstream error")
)

type SalaryHistory interface {
	History(ctx context.Context, employeeID int64) ([]salary.Record, error)
}

type Service struct {
	BaseURL  string
	APIKey   string
	Model    string
	Salaries SalaryHistory
	HTTP     *http.Client
}

func NewService(baseURL, apiKey, model string, salaries SalaryHistory) *Service {
	return &Service{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		Model:    model,
		Salaries: salaries,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Service) Configured() bool {
	return s.BaseURL != "" && s.APIKey != ""
}

func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	prompt := "You are a payroll and HR assistant for an Indian company. " +
		"Answer concisely. Amounts are in INR.\n\nQuestion: " + question
	return s.generate(ctx, prompt)
}

func (s *Service) SalaryInsights(ctx context.Context, employeeID int64) (string, error) {
	history, err := s.Salaries.History(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		return "No salary records are available yet.", nil
	}
	prompt := "You are a payroll assistant. Summarise the salary trend below for the employee " +
		"in plain language, amounts in INR.\n\n" + describe(history)
	return s.generate(ctx, prompt)
}

func (s *Service) TaxAdvice(ctx context.Context, employeeID int64) (string, error) {
	history, err := s.Salaries.History(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		return "No salary records are available yet.", nil
	}
	prompt := "You are an Indian income tax assistant. Based on the salary records below, " +
		"suggest general tax saving options. Do not give legally binding advice.\n\n" + describe(history)
	return s.generate(ctx, prompt)
}

func describe(history []salary.Record) string {
	var sb strings.Builder
	limit := len(history)
	if limit > 12 {
		limit = 12
	}
	for _, rec := range history[:limit] {
		fmt.Fprintf(&sb, "%d/%d: basic %.2f, allowances %.2f, deductions %.2f, tax %.2f, net %.2f\n",
			rec.Month, rec.Year, rec.BasicSalary, rec.Allowances, rec.Deductions, rec.TaxAmount, rec.NetSalary)
	}
	return sb.String()
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.BaseURL, s.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.APIKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
