package dashboard

import (
	"context"

	"coordinator-portal-backend/internal/kobo"
	"coordinator-portal-backend/internal/table"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// RecordSource fetches submissions and form definitions from the upstream
// collection service.
type RecordSource interface {
	FetchSubmissions(ctx context.Context, formID string) ([]kobo.Record, error)
	FetchFormDefinition(ctx context.Context, formID string) ([]kobo.Question, error)
}

// ServiceInterface is the dashboard surface the HTTP handlers depend on.
type ServiceInterface interface {
	Summary(ctx context.Context, owner string) (*Summary, error)
	Tools(ctx context.Context, owner, search string, page int) (*ToolList, error)
	ToolDetail(ctx context.Context, owner, toolID string) (*ToolDetail, error)
	Responses(ctx context.Context, owner, toolID, category string, query table.Query) (*table.View, error)
	Coordinators(ctx context.Context) (map[string]bool, error)
}
