package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/layer-3/aio/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAreas(t *testing.T, n int) *MemoryAreaStore {
	t.Helper()
	s := NewMemoryAreaStore().(*MemoryAreaStore)
	for i := 0; i < n; i++ {
		flag := "0"
		if i%2 == 1 {
			flag = "1"
		}
		require.NoError(t, s.Insert(context.Background(), &core.Area{
			ID:   fmt.Sprintf("id-%02d", i),
			Code: fmt.Sprintf("code-%02d", i),
			Name: fmt.Sprintf("name%02d", i),
			Sort: int64(i),
			Flag: flag,
		}))
	}
	return s
}

func TestMemoryAreaStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := seedAreas(t, 1)

	got, err := s.Get(ctx, "id-00")
	require.NoError(t, err)
	assert.Equal(t, "name00", got.Name)

	got.Name = "renamed"
	require.NoError(t, s.Update(ctx, got))

	byCode, err := s.GetByCode(ctx, "code-00")
	require.NoError(t, err)
	assert.Equal(t, "renamed", byCode.Name)

	require.NoError(t, s.Delete(ctx, "id-00"))
	_, err = s.Get(ctx, "id-00")
	assert.ErrorIs(t, err, core.ErrAreaNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "id-00"), core.ErrAreaNotFound)
	assert.ErrorIs(t, s.Update(ctx, got), core.ErrAreaNotFound)
}

func TestMemoryAreaStoreUniqueCode(t *testing.T) {
	ctx := context.Background()
	s := seedAreas(t, 2)

	err := s.Insert(ctx, &core.Area{ID: "other", Code: "code-00"})
	assert.ErrorIs(t, err, core.ErrAreaConflict)

	a, err := s.Get(ctx, "id-01")
	require.NoError(t, err)
	a.Code = "code-00"
	assert.ErrorIs(t, s.Update(ctx, a), core.ErrAreaConflict)
}

func TestMemoryAreaStoreListAndPage(t *testing.T) {
	ctx := context.Background()
	s := seedAreas(t, 25)

	all, err := s.List(ctx, core.AreaFilter{Flag: "0"})
	require.NoError(t, err)
	assert.Len(t, all, 13)
	assert.Equal(t, "id-00", all[0].ID)

	page, total, err := s.Page(ctx, core.AreaFilter{}, 20, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page, 5)
	assert.Equal(t, "id-20", page[0].ID)

	page, total, err = s.Page(ctx, core.AreaFilter{}, 30, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, page)

	page, total, err = s.Page(ctx, core.AreaFilter{}, -116, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, page)
}
