package app

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JeanDev-10/hotel-booking-backend/internal/api"
	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/imagestore"
	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
	"github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"
	"github.com/JeanDev-10/hotel-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	BcryptCost        int
	SchedulerInterval time.Duration
	ImageStore        imagestore.Store
	StoragePath       string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Scheduler  *reservation.Scheduler
}

// roomSource adapts the room catalog to the reservation ledger's view of it.
type roomSource struct {
	rooms room.Service
}

func (r roomSource) GetRoom(ctx context.Context, id int64) (*reservation.RoomInfo, error) {
	rm, err := r.rooms.GetByID(ctx, id)
	if err != nil {
		// Only a missing room reads as 404; infra failures keep their
		// error shape so they surface as 500s.
		if errors.Is(err, room.ErrNotFound) {
			return nil, reservation.ErrRoomNotFound
		}
		return nil, err
	}
	return &reservation.RoomInfo{ID: rm.ID, Price: rm.Price}, nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Room type module
	roomTypeRepo := roomtype.NewPgxRepository(cfg.DBPool)
	roomTypeService := roomtype.NewService(roomTypeRepo)

	// Room module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, roomTypeService, cfg.ImageStore)

	// Reservation module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, roomSource{rooms: roomService})
	scheduler := reservation.NewScheduler(reservationService, cfg.SchedulerInterval)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		StoragePath:        cfg.StoragePath,
		UserService:        userService,
		RoomTypeService:    roomTypeService,
		RoomService:        roomService,
		ReservationService: reservationService,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Scheduler:  scheduler,
	}
}
