package api

import (
	"io"
	"net/http"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/http/response"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
)

// maxUploadMemory caps how much of a multipart body is held in memory; the
// rest spills to temp files.
const maxUploadMemory = 8 * 1024 * 1024

// UploadResponse contains the stored media entry for an uploaded photo.
type UploadResponse struct {
	Media    domain.UploadedImage `json:"media"`
	BlurHash string               `json:"blur_hash,omitempty"`
}

// handleUploadImage stores a bookshelf photo in the media library.
// POST /api/upload-image (multipart, field "file")
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Please select an image file", s.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Please select an image file", s.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("failed to read upload", logger.WithError(err))
		response.InternalError(w, "Failed to read uploaded file", s.logger)
		return
	}

	contentType := header.Header.Get("Content-Type")
	result, err := s.uploadService.Upload(r.Context(), header.Filename, contentType, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, UploadResponse{
		Media:    result.Media,
		BlurHash: result.BlurHash,
	}, s.logger)
}
