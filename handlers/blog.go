package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/middleware"
	"mediq/services/blog"
)

// BlogHandler exposes the doctor-authored article endpoints.
type BlogHandler struct {
	Svc blog.BlogService
}

// NewBlogHandler creates a new BlogHandler instance.
func NewBlogHandler(svc blog.BlogService) *BlogHandler {
	return &BlogHandler{Svc: svc}
}

func respondBlogError(c *gin.Context, err error) {
	if se, ok := blog.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Message})
		return
	}
	respondInternalError(c, err)
}

// CreateHandler publishes a new article for the authenticated doctor. The
// request is a multipart form with an optional cover image.
func (h *BlogHandler) CreateHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString(middleware.CtxDoctorID)

	imagePath, cleanup, err := saveUploadedTemp(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "detail": err.Error()})
		return
	}
	defer cleanup()

	rec, err := h.Svc.Create(c, doctorID, blog.CreateInput{
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		Category:  c.PostForm("category"),
		ImagePath: imagePath,
	})
	if err != nil {
		logger.Error("Blog creation failed", zap.Error(err))
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListHandler lists articles, optionally filtered by category.
func (h *BlogHandler) ListHandler(c *gin.Context) {
	recs, err := h.Svc.List(c, c.Query("category"))
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": recs})
}

// GetHandler returns one article.
func (h *BlogHandler) GetHandler(c *gin.Context) {
	rec, err := h.Svc.GetByID(c, c.Param("id"))
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListMineHandler lists the authenticated doctor's own articles.
func (h *BlogHandler) ListMineHandler(c *gin.Context) {
	recs, err := h.Svc.ListByAuthor(c, c.GetString(middleware.CtxDoctorID))
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": recs})
}

// UpdateHandler applies article changes. Author only.
func (h *BlogHandler) UpdateHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	in := blog.UpdateInput{}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		in.Content = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		in.Category = &v
	}

	imagePath, cleanup, err := saveUploadedTemp(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "detail": err.Error()})
		return
	}
	defer cleanup()
	if imagePath != "" {
		in.ImagePath = &imagePath
	}

	rec, err := h.Svc.Update(c, c.Param("id"), doctorID, in)
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteHandler removes an article. Author only.
func (h *BlogHandler) DeleteHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	if err := h.Svc.Delete(c, c.Param("id"), doctorID); err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog deleted"})
}
