package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"payroll/client/api"
)

// Documents backs the document management page. Content travels base64 in
// JSON; downloads come back as raw bytes.
type Documents struct {
	api *api.Client
}

func NewDocuments(c *api.Client) *Documents { return &Documents{api: c} }

type DocumentInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (s *Documents) Upload(ctx context.Context, name, category string, content []byte) (Document, error) {
	input := DocumentInput{
		Name:     name,
		Category: category,
		Content:  base64.StdEncoding.EncodeToString(content),
	}
	var out Document
	err := s.api.Post(ctx, "/api/documents", input, &out)
	return out, err
}

func (s *Documents) Mine(ctx context.Context) ([]Document, error) {
	var out []Document
	err := s.api.Get(ctx, "/api/documents/me", &out)
	return out, err
}

func (s *Documents) ForEmployee(ctx context.Context, employeeID int64) ([]Document, error) {
	var out []Document
	err := s.api.Get(ctx, fmt.Sprintf("/api/documents/employee/%d", employeeID), &out)
	return out, err
}

func (s *Documents) Download(ctx context.Context, id string) ([]byte, error) {
	return s.api.GetBytes(ctx, "/api/documents/"+id+"/download")
}

func (s *Documents) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/api/documents/"+id)
}
