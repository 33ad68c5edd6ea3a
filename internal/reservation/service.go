package reservation

import (
	"context"
	"log"
	"time"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
)

// RoomSource provides the room data the ledger needs for pricing.
// It must return ErrRoomNotFound when the room does not exist.
type RoomSource interface {
	GetRoom(ctx context.Context, id int64) (*RoomInfo, error)
}

// RoomInfo is the slice of a room the booking flow cares about.
type RoomInfo struct {
	ID    int64
	Price float64
}

type CreateRequest struct {
	UserID    int64
	RoomID    int64
	DateStart time.Time
	DateEnd   time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	Cancel(ctx context.Context, id int64, actor auth.Identity) (*Detail, error)
	GetByID(ctx context.Context, id int64, actor auth.Identity) (*Detail, error)
	ListAll(ctx context.Context) ([]*Detail, error)
	ListByUser(ctx context.Context, userID int64) ([]*Detail, error)

	// PromoteDue confirms every pending reservation whose stay starts on the
	// calendar day of now. It returns how many reservations were promoted.
	PromoteDue(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	repo  Repository
	rooms RoomSource
}

func NewService(repo Repository, rooms RoomSource) Service {
	return &service{
		repo:  repo,
		rooms: rooms,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	start := DateOnly(req.DateStart)
	end := DateOnly(req.DateEnd)

	// Date validation: ordering, minimum one night, start not in the past.
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	if Nights(start, end) < 1 {
		return nil, ErrMinOneNight
	}
	if start.Before(DateOnly(time.Now())) {
		return nil, ErrStartInPast
	}

	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	res := &Reservation{
		UserID:     req.UserID,
		RoomID:     room.ID,
		DateStart:  start,
		DateEnd:    end,
		PriceTotal: float64(Nights(start, end)) * room.Price,
		Status:     StatusPending,
	}

	// Availability check and insert run as one atomic unit.
	if err := s.repo.CreateIfAvailable(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *service) Cancel(ctx context.Context, id int64, actor auth.Identity) (*Detail, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && d.UserID != actor.UserID {
		return nil, ErrCancelForbidden
	}
	if d.Status != StatusPending {
		return nil, ErrNotPending
	}

	// Compare-and-swap on the status so a concurrent promotion cannot be
	// silently overwritten. Losing the race surfaces as not-pending.
	ok, err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPending
	}

	d.Status = StatusCancelled
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id int64, actor auth.Identity) (*Detail, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && d.UserID != actor.UserID {
		return nil, ErrViewForbidden
	}
	return d, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Detail, error) {
	details, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoneFound
	}
	return details, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*Detail, error) {
	details, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoneFound
	}
	return details, nil
}

func (s *service) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	dayStart := DateOnly(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	due, err := s.repo.ListPendingStartingBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, res := range due {
		ok, err := s.repo.UpdateStatus(ctx, res.ID, StatusPending, StatusConfirmed)
		if err != nil {
			// One failing row must not abort the rest of the scan.
			log.Printf("promote reservation %d failed: %v", res.ID, err)
			continue
		}
		if ok {
			promoted++
		}
	}

	return promoted, nil
}
