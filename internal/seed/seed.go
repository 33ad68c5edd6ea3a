// Package seed holds the idempotent bootstrap routines. They are invoked
// explicitly by cmd/seed or deploy tooling, never implicitly at server start.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
)

// Schema creates every table the application uses. Safe to run repeatedly.
func Schema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS public.users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			lastname TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS public.types_rooms (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS public.rooms (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			type_id BIGINT NOT NULL REFERENCES public.types_rooms(id)
		)`,
		`CREATE TABLE IF NOT EXISTS public.images (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT NOT NULL REFERENCES public.rooms(id),
			url TEXT NOT NULL,
			public_id TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS public.status_reservations (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS public.reservations (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES public.users(id),
			room_id BIGINT NOT NULL REFERENCES public.rooms(id),
			date_start DATE NOT NULL,
			date_end DATE NOT NULL,
			price_total DOUBLE PRECISION NOT NULL,
			status_id BIGINT NOT NULL REFERENCES public.status_reservations(id)
		)`,
		`CREATE INDEX IF NOT EXISTS reservations_room_dates_idx
			ON public.reservations (room_id, date_start, date_end)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema failed: %w", err)
		}
	}
	return nil
}

// Statuses inserts the reservation lifecycle states.
func Statuses(ctx context.Context, pool *pgxpool.Pool) error {
	const query = `
		INSERT INTO public.status_reservations (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	for _, status := range []reservation.Status{
		reservation.StatusPending,
		reservation.StatusConfirmed,
		reservation.StatusCancelled,
	} {
		if _, err := pool.Exec(ctx, query, int(status), status.Name()); err != nil {
			return fmt.Errorf("seed status %s failed: %w", status.Name(), err)
		}
	}
	return nil
}

// RoomTypes inserts the default room categories.
func RoomTypes(ctx context.Context, pool *pgxpool.Pool) error {
	const query = `
		INSERT INTO public.types_rooms (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`
	for _, name := range []string{"Estándar", "Suite", "Familiar"} {
		if _, err := pool.Exec(ctx, query, name); err != nil {
			return fmt.Errorf("seed room type %s failed: %w", name, err)
		}
	}
	return nil
}

// AdminUser inserts an administrator account with the given credentials.
func AdminUser(ctx context.Context, pool *pgxpool.Pool, hasher auth.PasswordHasher, email, password string) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password failed: %w", err)
	}

	const query = `
		INSERT INTO public.users (name, lastname, email, password, role, active)
		VALUES ('admin', 'admin', $1, $2, $3, TRUE)
		ON CONFLICT (email) DO NOTHING
	`
	if _, err := pool.Exec(ctx, query, email, hash, string(auth.RoleAdmin)); err != nil {
		return fmt.Errorf("seed admin user failed: %w", err)
	}
	return nil
}
