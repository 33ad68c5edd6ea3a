package http

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
)

// maxImageSizeBytes bounds each uploaded photo.
const maxImageSizeBytes = 5 * 1024 * 1024

// RoomForm is the multipart payload for room creation and edition.
type RoomForm struct {
	Name        string
	Description string
	Price       float64
	TypeID      int64
	Files       []*multipart.FileHeader
}

// BindRoomForm reads the multipart form fields and image files.
// imagesRequired distinguishes creation (at least one photo) from edition
// (photos optional, replacing the current ones when present).
func BindRoomForm(c *gin.Context, imagesRequired bool) (*RoomForm, []response.FieldError) {
	var errs []response.FieldError
	form := &RoomForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	if form.Name == "" {
		errs = append(errs, response.FieldError{Field: "name", Message: "El nombre es obligatorio"})
	}
	if form.Description == "" {
		errs = append(errs, response.FieldError{Field: "description", Message: "La descripción es obligatoria"})
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		errs = append(errs, response.FieldError{Field: "price", Message: "El precio debe ser un número mayor a 0"})
	}
	form.Price = price

	typeID, err := strconv.ParseInt(c.PostForm("type_id"), 10, 64)
	if err != nil || typeID <= 0 {
		errs = append(errs, response.FieldError{Field: "type_id", Message: "El tipo de habitación es obligatorio"})
	}
	form.TypeID = typeID

	multipartForm, err := c.MultipartForm()
	if err == nil {
		form.Files = multipartForm.File["images"]
	}

	if imagesRequired && len(form.Files) == 0 {
		errs = append(errs, response.FieldError{Field: "images", Message: "Se debe subir al menos una imagen"})
	}
	if len(form.Files) > room.MaxImages {
		errs = append(errs, response.FieldError{Field: "images", Message: "Se permiten máximo 5 imágenes"})
	}
	for _, file := range form.Files {
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			errs = append(errs, response.FieldError{Field: "images", Message: "Solo se permiten imágenes"})
			break
		}
		if file.Size > maxImageSizeBytes {
			errs = append(errs, response.FieldError{Field: "images", Message: "Cada imagen debe pesar máximo 5MB"})
			break
		}
	}

	return form, errs
}

type ImageResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type RoomResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Type        TypeTag         `json:"type"`
	Images      []ImageResponse `json:"images"`
}

type TypeTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	images := make([]ImageResponse, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, ImageResponse{ID: img.ID, URL: img.URL})
	}
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Type:        TypeTag{ID: r.TypeID, Name: r.TypeName},
		Images:      images,
	}
}

func NewRoomResponses(rooms []*room.Room) []RoomResponse {
	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	return items
}
