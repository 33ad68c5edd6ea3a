package reservation

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
)

// fakeRepository keeps reservations in memory and reproduces the
// availability semantics of the SQL repository, including the fact that
// the overlap check does not filter by status.
type fakeRepository struct {
	nextID       int64
	reservations map[int64]*Reservation

	failUpdateFor map[int64]error
	denySwapFor   map[int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:        1,
		reservations:  make(map[int64]*Reservation),
		failUpdateFor: make(map[int64]error),
		denySwapFor:   make(map[int64]bool),
	}
}

func (f *fakeRepository) CreateIfAvailable(_ context.Context, r *Reservation) error {
	for _, existing := range f.reservations {
		if existing.RoomID != r.RoomID {
			continue
		}
		if existing.DateStart.Before(r.DateEnd) && existing.DateEnd.After(r.DateStart) {
			return ErrRoomUnavailable
		}
	}
	r.ID = f.nextID
	f.nextID++
	f.reservations[r.ID] = r
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Detail, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Detail{Reservation: *r, UserName: "test", RoomName: "room"}, nil
}

func (f *fakeRepository) ListAll(_ context.Context) ([]*Detail, error) {
	var out []*Detail
	for _, r := range f.reservations {
		out = append(out, &Detail{Reservation: *r})
	}
	return out, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID int64) ([]*Detail, error) {
	var out []*Detail
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, &Detail{Reservation: *r})
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, id int64, from, to Status) (bool, error) {
	if err, ok := f.failUpdateFor[id]; ok {
		return false, err
	}
	if f.denySwapFor[id] {
		return false, nil
	}
	r, ok := f.reservations[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (f *fakeRepository) ListPendingStartingBetween(_ context.Context, from, to time.Time) ([]*Reservation, error) {
	var out []*Reservation
	for _, r := range f.reservations {
		if r.Status != StatusPending {
			continue
		}
		if !r.DateStart.Before(from) && r.DateStart.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepository) HasPendingForRoom(_ context.Context, roomID int64) (bool, error) {
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeRoomSource struct {
	rooms map[int64]RoomInfo
}

func (f *fakeRoomSource) GetRoom(_ context.Context, id int64) (*RoomInfo, error) {
	info, ok := f.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &info, nil
}

func newTestService(price float64) (Service, *fakeRepository) {
	repo := newFakeRepository()
	rooms := &fakeRoomSource{rooms: map[int64]RoomInfo{
		1: {ID: 1, Price: price},
	}}
	return NewService(repo, rooms), repo
}

// futureDate returns the calendar date n days from today, in UTC.
func futureDate(n int) time.Time {
	return DateOnly(time.Now()).AddDate(0, 0, n)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the stay per night and starts pending", func(t *testing.T) {
		svc, _ := newTestService(100)

		res, err := svc.Create(ctx, CreateRequest{
			UserID:    7,
			RoomID:    1,
			DateStart: futureDate(10),
			DateEnd:   futureDate(12),
		})
		require.NoError(t, err)

		assert.Equal(t, float64(200), res.PriceTotal)
		assert.Equal(t, StatusPending, res.Status)
		assert.Equal(t, int64(7), res.UserID)
		assert.NotZero(t, res.ID)
	})

	t.Run("date validation", func(t *testing.T) {
		svc, _ := newTestService(100)

		tests := []struct {
			name  string
			start time.Time
			end   time.Time
			want  error
		}{
			{"end before start", futureDate(5), futureDate(3), ErrInvalidDateRange},
			{"end equals start", futureDate(5), futureDate(5), ErrInvalidDateRange},
			{"start in the past", futureDate(-2), futureDate(3), ErrStartInPast},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: tt.start, DateEnd: tt.end})
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, _ := newTestService(100)

		_, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 99, DateStart: futureDate(1), DateEnd: futureDate(2)})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("overlapping range is rejected", func(t *testing.T) {
		svc, _ := newTestService(100)

		_, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(10), DateEnd: futureDate(14)})
		require.NoError(t, err)

		// Inside, straddling and containing ranges all collide.
		for _, r := range [][2]int{{11, 13}, {8, 11}, {13, 16}, {8, 16}} {
			_, err := svc.Create(ctx, CreateRequest{UserID: 2, RoomID: 1, DateStart: futureDate(r[0]), DateEnd: futureDate(r[1])})
			assert.ErrorIs(t, err, ErrRoomUnavailable, "range [%d,%d)", r[0], r[1])
		}
	})

	t.Run("back to back stays share a checkout day", func(t *testing.T) {
		svc, _ := newTestService(100)

		_, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(10), DateEnd: futureDate(12)})
		require.NoError(t, err)

		// [12,14) starts the day [10,12) ends. Half-open ranges do not collide.
		_, err = svc.Create(ctx, CreateRequest{UserID: 2, RoomID: 1, DateStart: futureDate(12), DateEnd: futureDate(14)})
		assert.NoError(t, err)
	})

	t.Run("cancelled reservation still blocks the range", func(t *testing.T) {
		svc, repo := newTestService(100)

		res, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(10), DateEnd: futureDate(12)})
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, res.ID, auth.Identity{UserID: 1, Role: auth.RoleClient})
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, repo.reservations[res.ID].Status)

		_, err = svc.Create(ctx, CreateRequest{UserID: 2, RoomID: 1, DateStart: futureDate(10), DateEnd: futureDate(12)})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	owner := auth.Identity{UserID: 1, Role: auth.RoleClient}
	stranger := auth.Identity{UserID: 2, Role: auth.RoleClient}
	admin := auth.Identity{UserID: 3, Role: auth.RoleAdmin}

	setup := func(t *testing.T) (Service, *fakeRepository, int64) {
		svc, repo := newTestService(100)
		res, err := svc.Create(ctx, CreateRequest{UserID: owner.UserID, RoomID: 1, DateStart: futureDate(5), DateEnd: futureDate(7)})
		require.NoError(t, err)
		return svc, repo, res.ID
	}

	t.Run("owner can cancel a pending reservation", func(t *testing.T) {
		svc, repo, id := setup(t)

		d, err := svc.Cancel(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, d.Status)
		assert.Equal(t, StatusCancelled, repo.reservations[id].Status)
	})

	t.Run("admin can cancel anyone's reservation", func(t *testing.T) {
		svc, _, id := setup(t)

		d, err := svc.Cancel(ctx, id, admin)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, d.Status)
	})

	t.Run("another client is forbidden", func(t *testing.T) {
		svc, repo, id := setup(t)

		_, err := svc.Cancel(ctx, id, stranger)
		assert.ErrorIs(t, err, ErrCancelForbidden)
		assert.Equal(t, StatusPending, repo.reservations[id].Status)
	})

	t.Run("only pending reservations can be cancelled", func(t *testing.T) {
		for _, status := range []Status{StatusConfirmed, StatusCancelled} {
			svc, repo, id := setup(t)
			repo.reservations[id].Status = status

			_, err := svc.Cancel(ctx, id, owner)
			assert.ErrorIs(t, err, ErrNotPending, "status %s", status.Name())
		}
	})

	t.Run("losing the race against promotion surfaces as not pending", func(t *testing.T) {
		svc, repo, id := setup(t)

		// The reservation reads as pending but the swap finds it changed.
		repo.denySwapFor[id] = true

		_, err := svc.Cancel(ctx, id, owner)
		assert.ErrorIs(t, err, ErrNotPending)
		assert.Equal(t, StatusPending, repo.reservations[id].Status)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Cancel(ctx, 999, owner)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()

	owner := auth.Identity{UserID: 1, Role: auth.RoleClient}
	stranger := auth.Identity{UserID: 2, Role: auth.RoleClient}
	admin := auth.Identity{UserID: 3, Role: auth.RoleAdmin}

	svc, _ := newTestService(50)
	res, err := svc.Create(ctx, CreateRequest{UserID: owner.UserID, RoomID: 1, DateStart: futureDate(3), DateEnd: futureDate(4)})
	require.NoError(t, err)

	t.Run("owner and admin can view, strangers cannot", func(t *testing.T) {
		_, err := svc.GetByID(ctx, res.ID, owner)
		assert.NoError(t, err)

		_, err = svc.GetByID(ctx, res.ID, admin)
		assert.NoError(t, err)

		_, err = svc.GetByID(ctx, res.ID, stranger)
		assert.ErrorIs(t, err, ErrViewForbidden)
	})

	t.Run("listing by user filters ownership", func(t *testing.T) {
		mine, err := svc.ListByUser(ctx, owner.UserID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		_, err = svc.ListByUser(ctx, stranger.UserID)
		assert.ErrorIs(t, err, ErrNoneFound)
	})

	t.Run("empty listings are not found", func(t *testing.T) {
		emptySvc, _ := newTestService(50)

		_, err := emptySvc.ListAll(ctx)
		assert.ErrorIs(t, err, ErrNoneFound)
	})
}

func TestPromoteDue(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms reservations starting today", func(t *testing.T) {
		svc, repo := newTestService(100)

		today, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(0), DateEnd: futureDate(2)})
		require.NoError(t, err)
		later, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(5), DateEnd: futureDate(6)})
		require.NoError(t, err)

		promoted, err := svc.PromoteDue(ctx, time.Now().UTC())
		require.NoError(t, err)

		assert.Equal(t, 1, promoted)
		assert.Equal(t, StatusConfirmed, repo.reservations[today.ID].Status)
		assert.Equal(t, StatusPending, repo.reservations[later.ID].Status)
	})

	t.Run("a second scan promotes nothing", func(t *testing.T) {
		svc, _ := newTestService(100)

		_, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: 1, DateStart: futureDate(0), DateEnd: futureDate(1)})
		require.NoError(t, err)

		promoted, err := svc.PromoteDue(ctx, time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, 1, promoted)

		promoted, err = svc.PromoteDue(ctx, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, 0, promoted)
	})

	t.Run("one failing row does not abort the scan", func(t *testing.T) {
		// Three pending reservations starting today on separate rooms.
		rooms := map[int64]RoomInfo{1: {ID: 1, Price: 10}, 2: {ID: 2, Price: 10}, 3: {ID: 3, Price: 10}}
		repo := newFakeRepository()
		svc := NewService(repo, &fakeRoomSource{rooms: rooms})

		var ids []int64
		for roomID := int64(1); roomID <= 3; roomID++ {
			res, err := svc.Create(ctx, CreateRequest{UserID: 1, RoomID: roomID, DateStart: futureDate(0), DateEnd: futureDate(1)})
			require.NoError(t, err)
			ids = append(ids, res.ID)
		}

		repo.failUpdateFor[ids[1]] = errors.New("deadlock detected")

		promoted, err := svc.PromoteDue(ctx, time.Now().UTC())
		require.NoError(t, err)

		assert.Equal(t, 2, promoted)
		assert.Equal(t, StatusConfirmed, repo.reservations[ids[0]].Status)
		assert.Equal(t, StatusPending, repo.reservations[ids[1]].Status)
		assert.Equal(t, StatusConfirmed, repo.reservations[ids[2]].Status)
	})
}

// TestAcceptedRangesAreDisjoint hammers one room with random ranges and
// checks that every accepted pair is pairwise disjoint under [start, end).
func TestAcceptedRangesAreDisjoint(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	svc, _ := newTestService(80)

	type span struct{ start, end int }
	var accepted []span

	for i := 0; i < 40; i++ {
		start := 1 + rng.Intn(30)
		end := start + 1 + rng.Intn(5)

		_, err := svc.Create(ctx, CreateRequest{
			UserID:    int64(i + 1),
			RoomID:    1,
			DateStart: futureDate(start),
			DateEnd:   futureDate(end),
		})
		if err != nil {
			require.ErrorIs(t, err, ErrRoomUnavailable)
			continue
		}
		accepted = append(accepted, span{start, end})
	}

	require.NotEmpty(t, accepted)
	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			a, b := accepted[i], accepted[j]
			overlap := a.start < b.end && a.end > b.start
			assert.False(t, overlap, "ranges [%d,%d) and [%d,%d) overlap", a.start, a.end, b.start, b.end)
		}
	}
}

func TestDateHelpers(t *testing.T) {
	t.Run("ParseDate accepts plain dates and ISO timestamps", func(t *testing.T) {
		for _, in := range []string{"2027-12-01", "2027-12-01T00:00:00.000Z"} {
			d, err := ParseDate(in)
			require.NoError(t, err)
			assert.Equal(t, time.Date(2027, 12, 1, 0, 0, 0, 0, time.UTC), d)
		}

		_, err := ParseDate("01/12/2027")
		assert.Error(t, err)
	})

	t.Run("Nights counts whole nights", func(t *testing.T) {
		start := time.Date(2027, 12, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 2, Nights(start, start.AddDate(0, 0, 2)))
		assert.Equal(t, 0, Nights(start, start))
	})

	t.Run("status names", func(t *testing.T) {
		assert.Equal(t, "Pendiente", StatusPending.Name())
		assert.Equal(t, "Confirmada", StatusConfirmed.Name())
		assert.Equal(t, "Cancelada", StatusCancelled.Name())
	})
}
