// internal/handlers/media/media.go
package media

import (
	"io"
	"net/http"

	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/media"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService *media.MediaService
}

func NewMediaHandler(mediaService *media.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload attaches one or more images to a vehicle. Files are processed in
// parallel and reported per file; partial success returns 200 with the
// failures listed.
// POST /admin/vehicles/:id/images (multipart, field "images")
func (h *MediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		response.Error(c, http.StatusBadRequest, "no images provided", nil)
		return
	}

	files := make([]media.UploadFile, len(headers))
	for i, fh := range headers {
		fh := fh
		files[i] = media.UploadFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}

	v, results, err := h.mediaService.UploadImages(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "upload processed", gin.H{
		"vehicle": v,
		"results": results,
	})
}

// Remove detaches one image and deletes its stored object
// DELETE /admin/vehicles/:id/images/:imageId
func (h *MediaHandler) Remove(c *gin.Context) {
	v, err := h.mediaService.RemoveImage(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "image removed", v)
}

// SetFeatured designates an image as the featured one
// PUT /admin/vehicles/:id/images/:imageId/featured
func (h *MediaHandler) SetFeatured(c *gin.Context) {
	v, err := h.mediaService.SetFeatured(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "featured image updated", v)
}
