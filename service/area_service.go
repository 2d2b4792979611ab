package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// AreaService implements system area management
type AreaService struct {
	repo ports.AreaRepository
	now  func() time.Time
}

// NewAreaService creates an area service on top of repo
func NewAreaService(repo ports.AreaRepository) *AreaService {
	return &AreaService{repo: repo, now: time.Now}
}

// Save inserts the area when it has no ID and updates it otherwise
func (s *AreaService) Save(ctx context.Context, area *core.Area) (*core.Area, error) {
	area.Code = strings.TrimSpace(area.Code)
	area.Name = strings.TrimSpace(area.Name)
	if area.Code == "" || area.Name == "" {
		return nil, fmt.Errorf("%w: code and name are required", core.ErrAreaInvalid)
	}
	if area.Flag == "" {
		area.Flag = "0"
	}

	now := s.now()
	area.UpdatedAt = now

	if area.ID == "" {
		area.ID = strings.ReplaceAll(uuid.New().String(), "-", "")
		area.CreatedAt = now
		if err := s.repo.Insert(ctx, area); err != nil {
			return nil, err
		}
		return area, nil
	}

	if err := s.repo.Update(ctx, area); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, area.ID)
}

func (s *AreaService) Get(ctx context.Context, id string) (*core.Area, error) {
	return s.repo.Get(ctx, id)
}

func (s *AreaService) GetByCode(ctx context.Context, code string) (*core.Area, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *AreaService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// LoadAllListBy returns every area matching filter
func (s *AreaService) LoadAllListBy(ctx context.Context, filter core.AreaFilter) ([]*core.Area, error) {
	return s.repo.List(ctx, filter)
}

// FindPage returns the 1-based page pageNum. Out of range arguments fall
// back to the defaults, except a pageNum whose offset does not fit in an int.
func (s *AreaService) FindPage(ctx context.Context, pageNum, pageSize int, filter core.AreaFilter) (*core.Page[*core.Area], error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	if pageNum-1 > math.MaxInt/pageSize {
		return nil, fmt.Errorf("%w: page %d is out of range", core.ErrAreaInvalid, pageNum)
	}

	list, total, err := s.repo.Page(ctx, filter, (pageNum-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &core.Page[*core.Area]{
		PageNum:  pageNum,
		PageSize: pageSize,
		Total:    total,
		Pages:    int((total + int64(pageSize) - 1) / int64(pageSize)),
		List:     list,
	}, nil
}
