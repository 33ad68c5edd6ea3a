package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
)

type stubRoomService struct {
	room *room.Room
	err  error
}

func (s *stubRoomService) List(context.Context, string) ([]*room.Room, error) { return nil, s.err }

func (s *stubRoomService) GetByID(context.Context, int64) (*room.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.room, nil
}

func (s *stubRoomService) Create(context.Context, room.CreateRequest) (*room.Room, error) {
	return nil, s.err
}

func (s *stubRoomService) Update(context.Context, int64, room.UpdateRequest) (*room.Room, error) {
	return nil, s.err
}

func (s *stubRoomService) Delete(context.Context, int64) error { return s.err }

func TestRoomSource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns id and price", func(t *testing.T) {
		src := roomSource{rooms: &stubRoomService{room: &room.Room{ID: 5, Price: 120}}}

		info, err := src.GetRoom(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), info.ID)
		assert.Equal(t, float64(120), info.Price)
	})

	t.Run("missing room maps to the booking 404", func(t *testing.T) {
		src := roomSource{rooms: &stubRoomService{err: room.ErrNotFound}}

		_, err := src.GetRoom(ctx, 99)
		assert.ErrorIs(t, err, reservation.ErrRoomNotFound)
	})

	t.Run("infra failures keep their error shape", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		src := roomSource{rooms: &stubRoomService{err: dbErr}}

		_, err := src.GetRoom(ctx, 5)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, reservation.ErrRoomNotFound)
	})
}
