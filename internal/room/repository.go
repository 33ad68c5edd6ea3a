package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
)

type Repository interface {
	// CreateWithImages inserts the room and its image rows in one transaction.
	CreateWithImages(ctx context.Context, room *Room) error

	GetByID(ctx context.Context, id int64) (*Room, error)

	// List returns rooms with their type and images, optionally filtered by a
	// substring of the room type name.
	List(ctx context.Context, typeFilter string) ([]*Room, error)

	// Update rewrites the room's fields; when newImages is non-nil the old
	// image rows are replaced in the same transaction and their public ids
	// are returned for external cleanup.
	Update(ctx context.Context, room *Room, newImages []Image) (removed []string, err error)

	// Delete removes the room, its reservation history and its image rows
	// atomically, failing with ErrHasActiveReservations when a pending
	// reservation references the room. It returns the public ids of the
	// removed images.
	Delete(ctx context.Context, id int64) (removed []string, err error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateWithImages(ctx context.Context, room *Room) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create room failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertRoom = `
		INSERT INTO public.rooms (name, description, price, type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRow(ctx, insertRoom, room.Name, room.Description, room.Price, room.TypeID).Scan(&room.ID)
	if err != nil {
		return mapRoomInsertError(err)
	}

	if err := insertImages(ctx, tx, room.ID, room.Images); err != nil {
		return err
	}
	for i := range room.Images {
		room.Images[i].RoomID = room.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create room failed: %w", err)
	}
	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, roomID int64, images []Image) error {
	const insertImage = `
		INSERT INTO public.images (room_id, url, public_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	for i := range images {
		if err := tx.QueryRow(ctx, insertImage, roomID, images[i].URL, images[i].PublicID).Scan(&images[i].ID); err != nil {
			return fmt.Errorf("insert room image failed: %w", err)
		}
	}
	return nil
}

func mapRoomInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		if pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrTypeInvalid
		}
	}
	return fmt.Errorf("insert room failed: %w", err)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Room, error) {
	rooms, err := r.query(ctx, squirrel.Eq{"r.id": id}, "")
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNotFound
	}
	return rooms[0], nil
}

func (r *pgxRepository) List(ctx context.Context, typeFilter string) ([]*Room, error) {
	return r.query(ctx, nil, typeFilter)
}

func (r *pgxRepository) query(ctx context.Context, where interface{}, typeFilter string) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select("r.id", "r.name", "r.description", "r.price", "r.type_id", "t.name").
		From("public.rooms r").
		Join("public.types_rooms t ON r.type_id = t.id").
		OrderBy("r.id")

	if where != nil {
		builder = builder.Where(where)
	}
	if typeFilter != "" {
		builder = builder.Where(squirrel.ILike{"t.name": "%" + typeFilter + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	byID := make(map[int64]*Room)
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.Price, &room.TypeID, &room.TypeName); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &room)
		byID[room.ID] = &room
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}

	if len(rooms) == 0 {
		return rooms, nil
	}

	ids := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	imgQuery, imgArgs, err := psql.Select("id", "room_id", "url", "public_id").
		From("public.images").
		Where(squirrel.Eq{"room_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room images query failed: %w", err)
	}

	imgRows, err := r.pool.Query(ctx, imgQuery, imgArgs...)
	if err != nil {
		return nil, fmt.Errorf("load room images failed: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img Image
		if err := imgRows.Scan(&img.ID, &img.RoomID, &img.URL, &img.PublicID); err != nil {
			return nil, fmt.Errorf("scan room image failed: %w", err)
		}
		if room, ok := byID[img.RoomID]; ok {
			room.Images = append(room.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("load room images failed: %w", err)
	}

	return rooms, nil
}

func (r *pgxRepository) Update(ctx context.Context, room *Room, newImages []Image) ([]string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update room failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateRoom = `
		UPDATE public.rooms
		SET name = $1, description = $2, price = $3, type_id = $4
		WHERE id = $5
	`
	ct, err := tx.Exec(ctx, updateRoom, room.Name, room.Description, room.Price, room.TypeID, room.ID)
	if err != nil {
		return nil, mapRoomInsertError(err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	var removed []string
	if newImages != nil {
		removed, err = collectPublicIDs(ctx, tx, room.ID)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM public.images WHERE room_id = $1`, room.ID); err != nil {
			return nil, fmt.Errorf("delete room images failed: %w", err)
		}
		if err := insertImages(ctx, tx, room.ID, newImages); err != nil {
			return nil, err
		}
		for i := range newImages {
			newImages[i].RoomID = room.ID
		}
		room.Images = newImages
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update room failed: %w", err)
	}
	return removed, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete room failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var roomID int64
	err = tx.QueryRow(ctx, `SELECT id FROM public.rooms WHERE id = $1 FOR UPDATE`, id).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock room failed: %w", err)
	}

	// Deletion guard: a room with pending reservations stays.
	const pendingQuery = `
		SELECT EXISTS (
			SELECT 1 FROM public.reservations
			WHERE room_id = $1 AND status_id = $2
		)
	`
	var hasPending bool
	if err := tx.QueryRow(ctx, pendingQuery, id, int(reservation.StatusPending)).Scan(&hasPending); err != nil {
		return nil, fmt.Errorf("check pending reservations failed: %w", err)
	}
	if hasPending {
		return nil, ErrHasActiveReservations
	}

	removed, err := collectPublicIDs(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Only pending reservations guard the room; confirmed and cancelled
	// ones are history and go with it.
	if _, err := tx.Exec(ctx, `DELETE FROM public.reservations WHERE room_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete room reservations failed: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM public.images WHERE room_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete room images failed: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM public.rooms WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete room failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit delete room failed: %w", err)
	}
	return removed, nil
}

func collectPublicIDs(ctx context.Context, tx pgx.Tx, roomID int64) ([]string, error) {
	rows, err := tx.Query(ctx, `SELECT public_id FROM public.images WHERE room_id = $1`, roomID)
	if err != nil {
		return nil, fmt.Errorf("list room image ids failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room image id failed: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list room image ids failed: %w", err)
	}
	return ids, nil
}
