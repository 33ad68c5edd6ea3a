package room

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
	"github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"
)

type fakeTypes struct {
	known map[int64]string
}

func (f *fakeTypes) List(context.Context) ([]*roomtype.RoomType, error) {
	var out []*roomtype.RoomType
	for id, name := range f.known {
		out = append(out, &roomtype.RoomType{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeTypes) GetByID(_ context.Context, id int64) (*roomtype.RoomType, error) {
	name, ok := f.known[id]
	if !ok {
		return nil, roomtype.ErrNotFound
	}
	return &roomtype.RoomType{ID: id, Name: name}, nil
}

// fakeStore keeps stored objects in memory so tests can watch what the
// service saves and discards.
type fakeStore struct {
	objects map[string][]byte

	// failAfter makes Save fail once that many objects are stored.
	failAfter int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Save(_ context.Context, name string, content io.Reader) error {
	if f.failAfter > 0 && len(f.objects) >= f.failAfter {
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.objects[name] = data
	return nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	delete(f.objects, name)
	return nil
}

func (f *fakeStore) URL(name string) string {
	return "/static/" + name
}

type fakeRepository struct {
	nextID int64
	rooms  map[int64]*Room

	createErr error

	// reservations holds per-room reservation statuses, mirroring the
	// rows the SQL repository guards on and removes.
	reservations map[int64][]reservation.Status
}

func newFakeRepo() *fakeRepository {
	return &fakeRepository{
		nextID:       1,
		rooms:        make(map[int64]*Room),
		reservations: make(map[int64][]reservation.Status),
	}
}

func (f *fakeRepository) CreateWithImages(_ context.Context, room *Room) error {
	if f.createErr != nil {
		return f.createErr
	}
	room.ID = f.nextID
	f.nextID++
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, typeFilter string) ([]*Room, error) {
	var out []*Room
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, room *Room, newImages []Image) ([]string, error) {
	existing, ok := f.rooms[room.ID]
	if !ok {
		return nil, ErrNotFound
	}

	var removed []string
	if newImages != nil {
		for _, img := range existing.Images {
			removed = append(removed, img.PublicID)
		}
		room.Images = newImages
	} else {
		room.Images = existing.Images
	}

	copied := *room
	f.rooms[room.ID] = &copied
	return removed, nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) ([]string, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, status := range f.reservations[id] {
		if status == reservation.StatusPending {
			return nil, ErrHasActiveReservations
		}
	}

	var removed []string
	for _, img := range r.Images {
		removed = append(removed, img.PublicID)
	}
	delete(f.rooms, id)
	delete(f.reservations, id)
	return removed, nil
}

// testImage encodes a small PNG so the processor has something real to decode.
func testImage(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return bytes.NewReader(buf.Bytes())
}

func newRoomService(t *testing.T) (Service, *fakeRepository, *fakeStore) {
	repo := newFakeRepo()
	store := newFakeStore()
	types := &fakeTypes{known: map[int64]string{1: "Estándar", 2: "Suite"}}
	return NewService(repo, types, store), repo, store
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("stores photos and persists the room", func(t *testing.T) {
		svc, repo, store := newRoomService(t)

		created, err := svc.Create(ctx, CreateRequest{
			Name:        "Habitación 101",
			Description: "Vista al mar",
			Price:       150,
			TypeID:      2,
			Images:      []ImageUpload{{Filename: "a.png", Content: testImage(t)}},
		})
		require.NoError(t, err)

		require.Len(t, store.objects, 1)
		require.Len(t, repo.rooms, 1)
		require.Len(t, created.Images, 1)
		assert.Contains(t, created.Images[0].URL, "/static/rooms/")
		assert.Contains(t, created.Images[0].PublicID, ".jpg")
	})

	t.Run("unknown room type", func(t *testing.T) {
		svc, _, store := newRoomService(t)

		_, err := svc.Create(ctx, CreateRequest{Name: "x", Price: 10, TypeID: 99,
			Images: []ImageUpload{{Filename: "a.png", Content: testImage(t)}}})
		assert.ErrorIs(t, err, ErrTypeInvalid)
		assert.Empty(t, store.objects)
	})

	t.Run("repository failure discards stored photos", func(t *testing.T) {
		svc, repo, store := newRoomService(t)
		repo.createErr = ErrNameTaken

		_, err := svc.Create(ctx, CreateRequest{Name: "dup", Price: 10, TypeID: 1,
			Images: []ImageUpload{{Filename: "a.png", Content: testImage(t)}}})
		assert.ErrorIs(t, err, ErrNameTaken)
		assert.Empty(t, store.objects, "orphaned objects must not survive a failed insert")
	})

	t.Run("store failure mid batch discards earlier photos", func(t *testing.T) {
		svc, repo, store := newRoomService(t)
		store.failAfter = 1

		_, err := svc.Create(ctx, CreateRequest{Name: "x", Price: 10, TypeID: 1,
			Images: []ImageUpload{
				{Filename: "a.png", Content: testImage(t)},
				{Filename: "b.png", Content: testImage(t)},
			}})
		assert.Error(t, err)
		assert.Empty(t, store.objects)
		assert.Empty(t, repo.rooms)
	})

	t.Run("garbage upload is rejected", func(t *testing.T) {
		svc, _, store := newRoomService(t)

		_, err := svc.Create(ctx, CreateRequest{Name: "x", Price: 10, TypeID: 1,
			Images: []ImageUpload{{Filename: "a.txt", Content: bytes.NewReader([]byte("not an image"))}}})
		assert.Error(t, err)
		assert.Empty(t, store.objects)
	})
}

func TestUpdateRoom(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepository, *fakeStore, int64) {
		svc, repo, store := newRoomService(t)
		created, err := svc.Create(ctx, CreateRequest{
			Name: "Habitación 101", Price: 100, TypeID: 1,
			Images: []ImageUpload{{Filename: "a.png", Content: testImage(t)}},
		})
		require.NoError(t, err)
		return svc, repo, store, created.ID
	}

	t.Run("replacing photos removes the old objects", func(t *testing.T) {
		svc, _, store, id := setup(t)
		require.Len(t, store.objects, 1)

		var oldPublicID string
		for name := range store.objects {
			oldPublicID = name
		}

		updated, err := svc.Update(ctx, id, UpdateRequest{
			Name: "Habitación 101B", Price: 120, TypeID: 2,
			Images: []ImageUpload{{Filename: "b.png", Content: testImage(t)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "Habitación 101B", updated.Name)
		assert.Len(t, store.objects, 1)
		assert.NotContains(t, store.objects, oldPublicID)
	})

	t.Run("omitting photos keeps the current ones", func(t *testing.T) {
		svc, repo, store, id := setup(t)

		_, err := svc.Update(ctx, id, UpdateRequest{Name: "Renamed", Price: 90, TypeID: 1})
		require.NoError(t, err)

		assert.Len(t, store.objects, 1)
		assert.Len(t, repo.rooms[id].Images, 1)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.Update(ctx, 999, UpdateRequest{Name: "x", Price: 1, TypeID: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteRoom(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepository, *fakeStore, int64) {
		svc, repo, store := newRoomService(t)
		created, err := svc.Create(ctx, CreateRequest{
			Name: "Habitación 101", Price: 100, TypeID: 1,
			Images: []ImageUpload{{Filename: "a.png", Content: testImage(t)}},
		})
		require.NoError(t, err)
		return svc, repo, store, created.ID
	}

	t.Run("removes the room and its stored photos", func(t *testing.T) {
		svc, repo, store, id := setup(t)

		require.NoError(t, svc.Delete(ctx, id))

		assert.Empty(t, repo.rooms)
		assert.Empty(t, store.objects)
	})

	t.Run("blocked while a pending reservation exists", func(t *testing.T) {
		svc, repo, store, id := setup(t)
		repo.reservations[id] = []reservation.Status{reservation.StatusConfirmed, reservation.StatusPending}

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, ErrHasActiveReservations)
		assert.Len(t, repo.rooms, 1)
		assert.Len(t, store.objects, 1)
	})

	t.Run("terminal reservations do not block deletion", func(t *testing.T) {
		svc, repo, store, id := setup(t)
		repo.reservations[id] = []reservation.Status{reservation.StatusConfirmed, reservation.StatusCancelled}

		require.NoError(t, svc.Delete(ctx, id))

		assert.Empty(t, repo.rooms)
		assert.Empty(t, repo.reservations)
		assert.Empty(t, store.objects)
	})
}

func TestListRooms(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newRoomService(t)

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, ErrNoneFound)
}
