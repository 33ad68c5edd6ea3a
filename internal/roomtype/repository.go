package roomtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]*RoomType, error)
	GetByID(ctx context.Context, id int64) (*RoomType, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) List(ctx context.Context) ([]*RoomType, error) {
	const query = `SELECT id, name FROM public.types_rooms ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var types []*RoomType
	for rows.Next() {
		var t RoomType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan room type failed: %w", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list room types failed: %w", err)
	}
	return types, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*RoomType, error) {
	const query = `SELECT id, name FROM public.types_rooms WHERE id = $1`

	var t RoomType
	if err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &t, nil
}
