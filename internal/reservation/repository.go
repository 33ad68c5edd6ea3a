package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateIfAvailable inserts the reservation only if no existing reservation
	// on the same room overlaps its [DateStart, DateEnd) range. The overlap
	// check and the insert run in one transaction holding a lock on the room
	// row, so two concurrent requests for the same room serialize.
	CreateIfAvailable(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id int64) (*Detail, error)
	ListAll(ctx context.Context) ([]*Detail, error)
	ListByUser(ctx context.Context, userID int64) ([]*Detail, error)

	// UpdateStatus transitions the reservation from one status to another.
	// It reports false when the reservation no longer holds the expected
	// status, which is how a cancellation racing a promotion loses cleanly.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)

	// ListPendingStartingBetween returns pending reservations whose start date
	// falls within the half-open range [from, to).
	ListPendingStartingBetween(ctx context.Context, from, to time.Time) ([]*Reservation, error)

	// HasPendingForRoom reports whether any pending reservation references the room.
	HasPendingForRoom(ctx context.Context, roomID int64) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateIfAvailable(ctx context.Context, res *Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the room row for the duration of the check-then-insert.
	var roomID int64
	err = tx.QueryRow(ctx, `SELECT id FROM public.rooms WHERE id = $1 FOR UPDATE`, res.RoomID).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("lock room failed: %w", err)
	}

	// Half-open interval overlap: an existing [s, e) conflicts with the
	// candidate [S, E) when s < E and e > S.
	// NOTE: the check does not filter by status, so cancelled reservations
	// still block the range.
	const overlapQuery = `
		SELECT EXISTS (
			SELECT 1 FROM public.reservations
			WHERE room_id = $1 AND date_start < $3 AND date_end > $2
		)
	`
	var conflict bool
	if err := tx.QueryRow(ctx, overlapQuery, res.RoomID, res.DateStart, res.DateEnd).Scan(&conflict); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if conflict {
		return ErrRoomUnavailable
	}

	const insertQuery = `
		INSERT INTO public.reservations (user_id, room_id, date_start, date_end, price_total, status_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRow(ctx, insertQuery,
		res.UserID, res.RoomID, res.DateStart, res.DateEnd, res.PriceTotal, int(res.Status),
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("insert reservation failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create reservation failed: %w", err)
	}
	return nil
}

func detailSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"res.id", "res.user_id", "res.room_id", "res.date_start", "res.date_end",
		"res.price_total", "res.status_id",
		"u.name", "u.email",
		"r.name", "r.description", "r.price", "t.name",
	).
		From("public.reservations res").
		Join("public.users u ON res.user_id = u.id").
		Join("public.rooms r ON res.room_id = r.id").
		Join("public.types_rooms t ON r.type_id = t.id")
}

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	var statusID int
	err := row.Scan(
		&d.ID, &d.UserID, &d.RoomID, &d.DateStart, &d.DateEnd,
		&d.PriceTotal, &statusID,
		&d.UserName, &d.UserEmail,
		&d.RoomName, &d.RoomDescription, &d.RoomPrice, &d.RoomTypeName,
	)
	if err != nil {
		return nil, err
	}
	d.Status = Status(statusID)
	return &d, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Detail, error) {
	query, args, err := detailSelect().Where(squirrel.Eq{"res.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	d, err := scanDetail(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}

	if err := r.attachImages(ctx, []*Detail{d}); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Detail, error) {
	return r.list(ctx, detailSelect().OrderBy("res.date_start DESC"))
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID int64) ([]*Detail, error) {
	return r.list(ctx, detailSelect().Where(squirrel.Eq{"res.user_id": userID}).OrderBy("res.date_start DESC"))
}

func (r *pgxRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*Detail, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var details []*Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}

	if err := r.attachImages(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// attachImages loads the room images for the given details in one query.
func (r *pgxRepository) attachImages(ctx context.Context, details []*Detail) error {
	if len(details) == 0 {
		return nil
	}

	roomIDs := make([]int64, 0, len(details))
	seen := make(map[int64]bool, len(details))
	for _, d := range details {
		if !seen[d.RoomID] {
			seen[d.RoomID] = true
			roomIDs = append(roomIDs, d.RoomID)
		}
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "room_id", "url", "public_id").
		From("public.images").
		Where(squirrel.Eq{"room_id": roomIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build room images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load room images failed: %w", err)
	}
	defer rows.Close()

	byRoom := make(map[int64][]RoomImage)
	for rows.Next() {
		var img RoomImage
		if err := rows.Scan(&img.ID, &img.RoomID, &img.URL, &img.PublicID); err != nil {
			return fmt.Errorf("scan room image failed: %w", err)
		}
		byRoom[img.RoomID] = append(byRoom[img.RoomID], img)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load room images failed: %w", err)
	}

	for _, d := range details {
		d.RoomImages = byRoom[d.RoomID]
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error) {
	const query = `
		UPDATE public.reservations
		SET status_id = $1
		WHERE id = $2 AND status_id = $3
	`
	ct, err := r.pool.Exec(ctx, query, int(to), id, int(from))
	if err != nil {
		return false, fmt.Errorf("update reservation status failed: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *pgxRepository) ListPendingStartingBetween(ctx context.Context, from, to time.Time) ([]*Reservation, error) {
	const query = `
		SELECT id, user_id, room_id, date_start, date_end, price_total, status_id
		FROM public.reservations
		WHERE status_id = $1 AND date_start >= $2 AND date_start < $3
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, int(StatusPending), from, to)
	if err != nil {
		return nil, fmt.Errorf("list pending reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		var statusID int
		if err := rows.Scan(&res.ID, &res.UserID, &res.RoomID, &res.DateStart, &res.DateEnd, &res.PriceTotal, &statusID); err != nil {
			return nil, fmt.Errorf("scan pending reservation failed: %w", err)
		}
		res.Status = Status(statusID)
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending reservations failed: %w", err)
	}
	return reservations, nil
}

func (r *pgxRepository) HasPendingForRoom(ctx context.Context, roomID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.reservations
			WHERE room_id = $1 AND status_id = $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, roomID, int(StatusPending)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending reservations failed: %w", err)
	}
	return exists, nil
}
