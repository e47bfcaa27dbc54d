package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"versepin/internal/domain"
	"versepin/internal/service"
)

// PostHandler handles verse post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Upload handles POST /api/v1/posts/upload
// @Summary Upload verse artwork
// @Description Upload a verse image (JPG or PNG, max 10MB); the post is queued for transcription and formatting
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Verse artwork image (JPG or PNG)"
// @Success 201 {object} Response{data=domain.Post} "Post queued"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /posts/upload [post]
func (h *PostHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	post, err := h.postService.CreateFromUpload(c.Request.Context(), &service.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, post)
}

// List handles GET /api/v1/posts
// @Summary List posts
// @Description List posts with optional status filter and pagination
// @Tags posts
// @Produce json
// @Param status query string false "Filter by status" Enums(queued, processing, formatted, parse_failed, published, publish_failed)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Post,meta=PagMeta} "List of posts"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	status := domain.PostStatus(c.Query("status"))
	if status != "" && !domain.ValidPostStatuses[status] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"status must be one of queued, processing, formatted, parse_failed, published, publish_failed")
		return
	}

	posts, total, err := h.postService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, posts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/posts/:id
// @Summary Get post by ID
// @Description Get post details including raw model output and formatted fields
// @Tags posts
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} Response{data=domain.Post} "Post details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Post not found"
// @Security BearerAuth
// @Router /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post ID")
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), postID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, post)
}

// Publish handles POST /api/v1/posts/:id/publish
// @Summary Publish a post
// @Description Publish a formatted post to Pinterest. Posts below high confidence require force=true.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Param request body PublishRequest false "Publish options"
// @Success 200 {object} Response{data=domain.Post} "Post published"
// @Failure 400 {object} ErrorResponseBody "Invalid ID, post not formatted, low confidence, or invalid pin record"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Post not found"
// @Failure 409 {object} ErrorResponseBody "Post already published"
// @Security BearerAuth
// @Router /posts/{id}/publish [post]
func (h *PostHandler) Publish(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post ID")
		return
	}

	// Body is optional; absence means force=false.
	var req PublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	post, err := h.postService.Publish(c.Request.Context(), postID, req.Force)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, post)
}

// Delete handles DELETE /api/v1/posts/:id
// @Summary Delete a post
// @Description Delete a post and its stored image
// @Tags posts
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Post deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Post not found"
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post ID")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), postID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "post deleted"})
}

// ExportCSV handles GET /api/v1/posts/export
// @Summary Export posts as CSV
// @Description Download the full post history as a UTF-8 CSV file
// @Tags posts
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /posts/export [get]
func (h *PostHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="posts.csv"`)

	if err := h.postService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already written at this point; log and abort the stream.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] csv export failed: %v", requestID, err)
		c.Abort()
	}
}
