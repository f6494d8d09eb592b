package image_handler

import (
	"io"
	"net/http"

	"github.com/xenn00/room-chat/internal/dtos/image_dto"
	app_error "github.com/xenn00/room-chat/internal/errors"
	"github.com/xenn00/room-chat/internal/handlers"
	"github.com/xenn00/room-chat/internal/imaging"
	"github.com/xenn00/room-chat/state"
)

type ImageHandler struct {
	State *state.AppState
}

func NewImageHandler(state *state.AppState) *ImageHandler {
	return &ImageHandler{State: state}
}

// UploadImage runs the bounded transcode pass and hands back an inline
// payload the client embeds in its next message send. The transcode is
// synchronous on the request.
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes + 1024); err != nil {
		return app_error.BadRequest("No image file uploaded", "image")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return app_error.BadRequest("No image file uploaded", "image")
	}
	defer file.Close()

	// read one byte past the cap so oversize payloads are detectable
	// without buffering arbitrarily much
	raw, err := io.ReadAll(io.LimitReader(file, imaging.MaxUploadBytes+1))
	if err != nil {
		return app_error.Internal("Error processing image", "image")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}

	encoded, appErr := imaging.Ingest(raw, mimeType)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, image_dto.UploadImageResponse{
		Success:     true,
		ImageData:   encoded.DataURL(),
		ContentType: encoded.ContentType,
	})
	return nil
}
