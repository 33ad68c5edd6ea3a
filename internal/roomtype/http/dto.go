package http

import "github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"

type RoomTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewRoomTypeResponses(types []*roomtype.RoomType) []RoomTypeResponse {
	items := make([]RoomTypeResponse, len(types))
	for i, t := range types {
		items[i] = RoomTypeResponse{ID: t.ID, Name: t.Name}
	}
	return items
}
