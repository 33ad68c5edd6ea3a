package roomtype

import "context"

type Service interface {
	List(ctx context.Context) ([]*RoomType, error)
	GetByID(ctx context.Context, id int64) (*RoomType, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*RoomType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, ErrNoneFound
	}
	return types, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}
