package http

import (
	"fmt"
	"mime/multipart"

	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
)

type openedUpload struct {
	filename string
	file     multipart.File
}

type openedUploads []openedUpload

// openUploads opens every uploaded file so the service can stream them.
func openUploads(form *RoomForm) (openedUploads, error) {
	uploads := make(openedUploads, 0, len(form.Files))
	for _, header := range form.Files {
		file, err := header.Open()
		if err != nil {
			closeUploads(uploads)
			return nil, fmt.Errorf("open uploaded file %s failed: %w", header.Filename, err)
		}
		uploads = append(uploads, openedUpload{filename: header.Filename, file: file})
	}
	return uploads, nil
}

func closeUploads(uploads openedUploads) {
	for _, u := range uploads {
		u.file.Close()
	}
}

func (uploads openedUploads) asImageUploads() []room.ImageUpload {
	if len(uploads) == 0 {
		return nil
	}
	images := make([]room.ImageUpload, len(uploads))
	for i, u := range uploads {
		images[i] = room.ImageUpload{Filename: u.filename, Content: u.file}
	}
	return images
}
