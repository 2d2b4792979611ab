package ports

import (
	"context"

	"github.com/layer-3/aio/core"
)

// AreaRepository persists system areas
type AreaRepository interface {
	Insert(ctx context.Context, area *core.Area) error
	Update(ctx context.Context, area *core.Area) error
	Get(ctx context.Context, id string) (*core.Area, error)
	GetByCode(ctx context.Context, code string) (*core.Area, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter core.AreaFilter) ([]*core.Area, error)

	// Page returns up to limit areas after skipping offset, plus the total
	// number of matches.
	Page(ctx context.Context, filter core.AreaFilter, offset, limit int) ([]*core.Area, int64, error)
}
