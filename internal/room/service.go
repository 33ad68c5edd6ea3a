package room

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/imagestore"
	"github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"
)

// ImageUpload is one uploaded photo, already opened for reading.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type CreateRequest struct {
	Name        string
	Description string
	Price       float64
	TypeID      int64
	Images      []ImageUpload
}

type UpdateRequest struct {
	Name        string
	Description string
	Price       float64
	TypeID      int64
	Images      []ImageUpload // nil keeps the current photos
}

type Service interface {
	List(ctx context.Context, typeFilter string) ([]*Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id int64) error
}

const (
	imageMaxWidth  = 1600
	imageMaxHeight = 1600
)

type service struct {
	repo      Repository
	types     roomtype.Service
	store     imagestore.Store
	processor *imagestore.Processor
}

func NewService(repo Repository, types roomtype.Service, store imagestore.Store) Service {
	return &service{
		repo:      repo,
		types:     types,
		store:     store,
		processor: imagestore.NewProcessor(),
	}
}

func (s *service) List(ctx context.Context, typeFilter string) ([]*Room, error) {
	rooms, err := s.repo.List(ctx, typeFilter)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoneFound
	}
	return rooms, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if _, err := s.types.GetByID(ctx, req.TypeID); err != nil {
		return nil, ErrTypeInvalid
	}

	images, err := s.storeImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	room := &Room{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		TypeID:      req.TypeID,
		Images:      images,
	}

	if err := s.repo.CreateWithImages(ctx, room); err != nil {
		s.discardImages(ctx, images)
		return nil, err
	}

	return s.repo.GetByID(ctx, room.ID)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.types.GetByID(ctx, req.TypeID); err != nil {
		return nil, ErrTypeInvalid
	}

	var newImages []Image
	if len(req.Images) > 0 {
		newImages, err = s.storeImages(ctx, req.Images)
		if err != nil {
			return nil, err
		}
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.TypeID = req.TypeID

	removed, err := s.repo.Update(ctx, existing, newImages)
	if err != nil {
		s.discardImages(ctx, newImages)
		return nil, err
	}

	// The replaced objects are gone from the catalog; removing them from the
	// store is best effort.
	for _, publicID := range removed {
		if err := s.store.Delete(ctx, publicID); err != nil {
			log.Printf("delete stored image %s failed: %v", publicID, err)
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, publicID := range removed {
		if err := s.store.Delete(ctx, publicID); err != nil {
			log.Printf("delete stored image %s failed: %v", publicID, err)
		}
	}
	return nil
}

// storeImages normalizes and stores every upload, undoing the stored ones if
// a later upload fails.
func (s *service) storeImages(ctx context.Context, uploads []ImageUpload) ([]Image, error) {
	images := make([]Image, 0, len(uploads))
	for _, upload := range uploads {
		normalized, err := s.processor.Normalize(upload.Content, imageMaxWidth, imageMaxHeight)
		if err != nil {
			s.discardImages(ctx, images)
			return nil, fmt.Errorf("process image %s failed: %w", upload.Filename, err)
		}

		objectID := uuid.New().String()
		publicID := fmt.Sprintf("rooms/%s/%s.jpg", objectID[:2], objectID)

		if err := s.store.Save(ctx, publicID, normalized); err != nil {
			s.discardImages(ctx, images)
			return nil, fmt.Errorf("store image %s failed: %w", upload.Filename, err)
		}

		images = append(images, Image{
			URL:      s.store.URL(publicID),
			PublicID: publicID,
		})
	}
	return images, nil
}

func (s *service) discardImages(ctx context.Context, images []Image) {
	for _, img := range images {
		if err := s.store.Delete(ctx, img.PublicID); err != nil {
			log.Printf("discard stored image %s failed: %v", img.PublicID, err)
		}
	}
}
