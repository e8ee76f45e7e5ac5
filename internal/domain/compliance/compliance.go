package compliance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Report struct {
	Year          int     `json:"year"`
	RecordsTotal  int     `json:"recordsTotal"`
	Processed     int     `json:"processed"`
	Unprocessed   int     `json:"unprocessed"`
	TaxWithheld   float64 `json:"taxWithheld"`
	GrossPaid     float64 `json:"grossPaid"`
	NetPaid       float64 `json:"netPaid"`
	ProcessedRate float64 `json:"processedRate"`
}

type StoreAPI interface {
	Report(ctx context.Context, year int) (Report, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Report aggregates the year's payroll for statutory filing. Tax, gross and
// net only count processed records since unprocessed figures may still change.
func (s *Store) Report(ctx context.Context, year int) (Report, error) {
	rep := Report{Year: year}
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COUNT(1) FILTER (WHERE processed),
           COALESCE(SUM(tax_amount) FILTER (WHERE processed), 0),
           COALESCE(SUM(gross_salary) FILTER (WHERE processed), 0),
           COALESCE(SUM(net_salary) FILTER (WHERE processed), 0)
    FROM salary_records
    WHERE year = $1
  `, year).Scan(&rep.RecordsTotal, &rep.Processed, &rep.TaxWithheld, &rep.GrossPaid, &rep.NetPaid)
	if err != nil {
		return Report{}, err
	}
	rep.Unprocessed = rep.RecordsTotal - rep.Processed
	if rep.RecordsTotal > 0 {
		rep.ProcessedRate = float64(rep.Processed) / float64(rep.RecordsTotal) * 100
	}
	return rep, nil
}

var _ StoreAPI = (*Store)(nil)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Report(ctx context.Context, year int) (Report, error) {
	return s.Store.Report(ctx, year)
}
