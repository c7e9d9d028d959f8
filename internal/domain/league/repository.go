package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByExternalID(ctx context.Context, externalID int64) (League, bool, error)
}
