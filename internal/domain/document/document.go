package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxSizeBytes = 10 << 20

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid document")
	ErrTooLarge     = errors.New("document exceeds size limit")
)

type Document struct {
	ID         string    `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Input struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  []byte `json:"-"`
}

type StoreAPI interface {
	Create(ctx context.Context, id string, employeeID int64, input Input) (Document, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Content(ctx context.Context, id string) (Document, []byte, error)
	Delete(ctx context.Context, id string) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectDocument = `
  SELECT id, employee_id, name, category, size_bytes, uploaded_at FROM documents
`

func scanDocument(row pgx.Row) (Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.EmployeeID, &doc.Name, &doc.Category, &doc.SizeBytes, &doc.UploadedAt)
	return doc, err
}

func (s *Store) Create(ctx context.Context, id string, employeeID int64, input Input) (Document, error) {
	return scanDocument(s.DB.QueryRow(ctx, `
    INSERT INTO documents (id, employee_id, name, category, size_bytes, content)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, employee_id, name, category, size_bytes, uploaded_at
  `, id, employeeID, input.Name, input.Category, len(input.Content), input.Content))
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Document, error) {
	rows, err := s.DB.Query(ctx, selectDocument+" WHERE employee_id = $1 ORDER BY uploaded_at DESC", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	doc, err := scanDocument(s.DB.QueryRow(ctx, selectDocument+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func (s *Store) Content(ctx context.Context, id string) (Document, []byte, error) {
	var (
		doc     Document
		content []byte
	)
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, name, category, size_bytes, uploaded_at, content
    FROM documents WHERE id = $1
  `, id).Scan(&doc.ID, &doc.EmployeeID, &doc.Name, &doc.Category, &doc.SizeBytes, &doc.UploadedAt, &content)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, nil, ErrNotFound
	}
	return doc, content, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ StoreAPI = (*Store)(nil)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Upload(ctx context.Context, employeeID int64, input Input) (Document, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" || len(input.Content) == 0 {
		return Document{}, ErrInvalidInput
	}
	if len(input.Content) > maxSizeBytes {
		return Document{}, ErrTooLarge
	}
	if input.Category == "" {
		input.Category = "GENERAL"
	}
	return s.Store.Create(ctx, uuid.NewString(), employeeID, input)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]Document, error) {
	return s.Store.ListForEmployee(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Content(ctx context.Context, id string) (Document, []byte, error) {
	return s.Store.Content(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
