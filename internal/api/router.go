package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
	reservationHttp "github.com/JeanDev-10/hotel-booking-backend/internal/reservation/http"
	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
	roomHttp "github.com/JeanDev-10/hotel-booking-backend/internal/room/http"
	"github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"
	roomtypeHttp "github.com/JeanDev-10/hotel-booking-backend/internal/roomtype/http"
	"github.com/JeanDev-10/hotel-booking-backend/internal/user"
	userHttp "github.com/JeanDev-10/hotel-booking-backend/internal/user/http"
)

// Config holds the dependencies the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	StoragePath  string

	UserService        user.Service
	RoomTypeService    roomtype.Service
	RoomService        room.Service
	ReservationService reservation.Service
	JWTManager         *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger prints request information; Recovery turns panics into 500s.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	roomTypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	// Stored room images are served from disk.
	if cfg.StoragePath != "" {
		r.Static("/static", cfg.StoragePath)
	}

	v1 := r.Group("/api/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		roomtypeHttp.RegisterRoutes(v1, roomTypeHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
	}

	return r
}
