package salary

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Upsert(ctx context.Context, employeeID int64, input Input) (Record, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 || input.Year > 2100 {
		return Record{}, ErrInvalidInput
	}
	if input.BasicSalary < 0 || input.Allowances < 0 || input.Deductions < 0 ||
		input.TaxPercent < 0 || input.TaxPercent > 100 {
		return Record{}, ErrInvalidInput
	}
	gross, tax, net := Compute(input.BasicSalary, input.Allowances, input.Deductions, input.TaxPercent)
	return s.Store.Upsert(ctx, employeeID, input, gross, tax, net)
}

func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) ForEmployeeMonth(ctx context.Context, employeeID int64, month, year int) (Record, error) {
	return s.Store.ForEmployeeMonth(ctx, employeeID, month, year)
}

func (s *Service) History(ctx context.Context, employeeID int64) ([]Record, error) {
	return s.Store.HistoryForEmployee(ctx, employeeID)
}

func (s *Service) ForMonth(ctx context.Context, month, year int) ([]Record, error) {
	return s.Store.ForMonth(ctx, month, year)
}

func (s *Service) ForYear(ctx context.Context, year int) ([]Record, error) {
	return s.Store.ForYear(ctx, year)
}

func (s *Service) Unprocessed(ctx context.Context) ([]Record, error) {
	return s.Store.Unprocessed(ctx)
}

func (s *Service) Process(ctx context.Context, id int64) (Record, error) {
	return s.Store.MarkProcessed(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}
