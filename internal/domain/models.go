package domain

import (
	"time"
)

// UploadRequest is the JSON body of POST /api/save_image. Image is a pointer
// so that a missing key and an empty string can be told apart.
type UploadRequest struct {
	Image *string `json:"image" binding:"required"`
}

type StoredImage struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	URLPath     string    `json:"path"`
	Size        int64     `json:"size"`
	Header      string    `json:"header"`
	SavedAt     time.Time `json:"saved_at"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
