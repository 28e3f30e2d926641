package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)
}
