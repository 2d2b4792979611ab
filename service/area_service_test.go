package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/layer-3/aio/adapters/store"
	"github.com/layer-3/aio/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaSaveInsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	svc := NewAreaService(store.NewMemoryAreaStore())

	created, err := svc.Save(ctx, &core.Area{Code: " c1 ", Name: "name0", Type: "1"})
	require.NoError(t, err)
	assert.Len(t, created.ID, 32)
	assert.Equal(t, "c1", created.Code)
	assert.Equal(t, "0", created.Flag)

	updated, err := svc.Save(ctx, &core.Area{ID: created.ID, Code: "c1", Name: "renamed", Type: "0"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	byCode, err := svc.GetByCode(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrAreaNotFound)
}

func TestAreaSaveValidates(t *testing.T) {
	svc := NewAreaService(store.NewMemoryAreaStore())

	_, err := svc.Save(context.Background(), &core.Area{Name: "no code"})
	assert.ErrorIs(t, err, core.ErrAreaInvalid)

	_, err = svc.Save(context.Background(), &core.Area{ID: "missing", Code: "c", Name: "n"})
	assert.ErrorIs(t, err, core.ErrAreaNotFound)
}

func TestAreaFindPage(t *testing.T) {
	ctx := context.Background()
	svc := NewAreaService(store.NewMemoryAreaStore())
	for i := 0; i <= 30; i++ {
		_, err := svc.Save(ctx, &core.Area{Code: fmt.Sprintf("code%02d", i), Name: fmt.Sprintf("name%02d", i), Sort: int64(i)})
		require.NoError(t, err)
	}

	page, err := svc.FindPage(ctx, 1, 10, core.AreaFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageNum)
	assert.EqualValues(t, 31, page.Total)
	assert.Equal(t, 4, page.Pages)
	require.Len(t, page.List, 10)
	assert.Equal(t, "name00", page.List[0].Name)

	last, err := svc.FindPage(ctx, 4, 10, core.AreaFilter{})
	require.NoError(t, err)
	assert.Len(t, last.List, 1)

	defaults, err := svc.FindPage(ctx, 0, 0, core.AreaFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.PageNum)
	assert.Equal(t, DefaultPageSize, defaults.PageSize)

	capped, err := svc.FindPage(ctx, 1, 1000, core.AreaFilter{})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, capped.PageSize)

	all, err := svc.LoadAllListBy(ctx, core.AreaFilter{Flag: "0"})
	require.NoError(t, err)
	assert.Len(t, all, 31)
}

func TestAreaFindPageRejectsOverflowingPage(t *testing.T) {
	ctx := context.Background()
	svc := NewAreaService(store.NewMemoryAreaStore())
	_, err := svc.Save(ctx, &core.Area{Code: "c1", Name: "n1"})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = svc.FindPage(ctx, math.MaxInt/50, 100, core.AreaFilter{})
	})
	assert.ErrorIs(t, err, core.ErrAreaInvalid)

	_, err = svc.FindPage(ctx, math.MaxInt, 1, core.AreaFilter{})
	assert.ErrorIs(t, err, core.ErrAreaInvalid)

	// The largest page whose offset still fits is simply empty.
	page, err := svc.FindPage(ctx, math.MaxInt/100+1, 100, core.AreaFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.List)
	assert.EqualValues(t, 1, page.Total)
}
