package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

const areaSchema = `
CREATE TABLE IF NOT EXISTS sys_area (
	id         TEXT PRIMARY KEY,
	code       TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	parent_id  TEXT NOT NULL DEFAULT '',
	parent_ids TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL DEFAULT '',
	sort       BIGINT NOT NULL DEFAULT 0,
	remark     TEXT NOT NULL DEFAULT '',
	flag       TEXT NOT NULL DEFAULT '0',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

const areaColumns = "id, code, name, parent_id, parent_ids, type, sort, remark, flag, created_at, updated_at"

// PostgresAreaStore is a PostgreSQL-backed AreaRepository
type PostgresAreaStore struct {
	pool *pgxpool.Pool
}

// NewPostgresAreaStore connects to dsn and ensures the sys_area table exists
func NewPostgresAreaStore(ctx context.Context, dsn string) (*PostgresAreaStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := pool.Exec(ctx, areaSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating sys_area table: %w", err)
	}

	return &PostgresAreaStore{pool: pool}, nil
}

var _ ports.AreaRepository = (*PostgresAreaStore)(nil)

// Close releases the connection pool
func (s *PostgresAreaStore) Close() {
	s.pool.Close()
}

func (s *PostgresAreaStore) Insert(ctx context.Context, a *core.Area) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO sys_area ("+areaColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		a.ID, a.Code, a.Name, a.ParentID, a.ParentIDs, a.Type, a.Sort, a.Remark, a.Flag, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrAreaConflict
		}
		return fmt.Errorf("inserting area: %w", err)
	}
	return nil
}

func (s *PostgresAreaStore) Update(ctx context.Context, a *core.Area) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sys_area
		SET code = $2, name = $3, parent_id = $4, parent_ids = $5, type = $6,
		    sort = $7, remark = $8, flag = $9, updated_at = $10
		WHERE id = $1`,
		a.ID, a.Code, a.Name, a.ParentID, a.ParentIDs, a.Type, a.Sort, a.Remark, a.Flag, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrAreaConflict
		}
		return fmt.Errorf("updating area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAreaNotFound
	}
	return nil
}

func (s *PostgresAreaStore) Get(ctx context.Context, id string) (*core.Area, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+areaColumns+" FROM sys_area WHERE id = $1", id)
	return scanArea(row)
}

func (s *PostgresAreaStore) GetByCode(ctx context.Context, code string) (*core.Area, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+areaColumns+" FROM sys_area WHERE code = $1", code)
	return scanArea(row)
}

func (s *PostgresAreaStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sys_area WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAreaNotFound
	}
	return nil
}

func (s *PostgresAreaStore) List(ctx context.Context, filter core.AreaFilter) ([]*core.Area, error) {
	where, args := areaWhere(filter)
	rows, err := s.pool.Query(ctx, "SELECT "+areaColumns+" FROM sys_area"+where+" ORDER BY sort, name, id", args...)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	return collectAreas(rows)
}

func (s *PostgresAreaStore) Page(ctx context.Context, filter core.AreaFilter, offset, limit int) ([]*core.Area, int64, error) {
	where, args := areaWhere(filter)

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM sys_area"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting areas: %w", err)
	}

	n := len(args)
	query := "SELECT " + areaColumns + " FROM sys_area" + where +
		" ORDER BY sort, name, id LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	rows, err := s.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("paging areas: %w", err)
	}

	areas, err := collectAreas(rows)
	if err != nil {
		return nil, 0, err
	}
	return areas, total, nil
}

// areaWhere builds a WHERE clause with positional arguments for filter
func areaWhere(filter core.AreaFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	add("flag", filter.Flag)
	add("type", filter.Type)
	add("parent_id", filter.ParentID)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanArea(row pgx.Row) (*core.Area, error) {
	var a core.Area
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.ParentID, &a.ParentIDs, &a.Type, &a.Sort, &a.Remark, &a.Flag, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrAreaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning area: %w", err)
	}
	return &a, nil
}

func collectAreas(rows pgx.Rows) ([]*core.Area, error) {
	defer rows.Close()

	areas := []*core.Area{}
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating areas: %w", err)
	}
	return areas, nil
}

// isUniqueViolation reports a PostgreSQL unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
