package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	blogRepo "mediq/database/repository/blog"
	"mediq/models"
	"mediq/services/storage"
	"mediq/utils"
)

const imageFolder = "mediq/blog_images"

// Error codes mapped to HTTP statuses by the handlers.
const (
	CodeValidation = "validation"
	CodeNotFound   = "notFound"
	CodeForbidden  = "forbidden"
)

type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

// AsServiceError returns the typed error if err carries one.
func AsServiceError(err error) (*ServiceError, bool) {
	se, ok := err.(*ServiceError)
	return se, ok
}

// CreateInput is a new article from a doctor.
type CreateInput struct {
	Title     string
	Content   string
	Category  string
	ImagePath string
}

// UpdateInput carries the editable article fields. Nil pointers leave the
// stored value unchanged.
type UpdateInput struct {
	Title     *string
	Content   *string
	Category  *string
	ImagePath *string
}

// BlogService manages doctor-authored articles. Mutations are restricted to
// the article's author.
type BlogService interface {
	Create(ctx context.Context, authorID string, in CreateInput) (*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, category string) ([]models.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error)
	Update(ctx context.Context, id, requesterID string, in UpdateInput) (*models.Blog, error)
	Delete(ctx context.Context, id, requesterID string) error
}

// DefaultBlogService is the production implementation.
type DefaultBlogService struct {
	Repo    blogRepo.BlogRepository
	Storage storage.StorageService
}

// Create publishes a new article for the authoring doctor.
func (s *DefaultBlogService) Create(ctx context.Context, authorID string, in CreateInput) (*models.Blog, error) {
	if in.Title == "" {
		return nil, newError(CodeValidation, "title is required")
	}
	if in.Content == "" {
		return nil, newError(CodeValidation, "content is required")
	}

	rec := models.Blog{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if in.ImagePath != "" {
		publicID, err := s.Storage.UploadFile(ctx, in.ImagePath, imageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to store blog image: %w", err)
		}
		rec.ImageID = publicID
	}

	if err := s.Repo.Create(&rec); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	s.resolveImageURL(ctx, &rec)
	return &rec, nil
}

// GetByID resolves a single article.
func (s *DefaultBlogService) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "blog not found")
	}
	s.resolveImageURL(ctx, rec)
	return rec, nil
}

// List returns articles newest first, optionally filtered by category.
func (s *DefaultBlogService) List(ctx context.Context, category string) ([]models.Blog, error) {
	recs, err := s.Repo.List(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	for i := range recs {
		s.resolveImageURL(ctx, &recs[i])
	}
	return recs, nil
}

// ListByAuthor returns a doctor's own articles.
func (s *DefaultBlogService) ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error) {
	recs, err := s.Repo.ListByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	for i := range recs {
		s.resolveImageURL(ctx, &recs[i])
	}
	return recs, nil
}

// Update applies changes to an article. Only the author may update it.
func (s *DefaultBlogService) Update(ctx context.Context, id, requesterID string, in UpdateInput) (*models.Blog, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "blog not found")
	}
	if rec.AuthorID != requesterID {
		return nil, newError(CodeForbidden, "only the author may modify this blog")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, newError(CodeValidation, "title cannot be empty")
		}
		rec.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, newError(CodeValidation, "content cannot be empty")
		}
		rec.Content = *in.Content
	}
	if in.Category != nil {
		rec.Category = *in.Category
	}
	if in.ImagePath != nil && *in.ImagePath != "" {
		publicID, err := s.Storage.UploadFile(ctx, *in.ImagePath, imageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to store blog image: %w", err)
		}
		if rec.ImageID != "" {
			if err := s.Storage.DeleteFile(ctx, rec.ImageID); err != nil {
				utils.GetLogger().Warn("Update: failed to delete previous blog image",
					zap.String("imageId", rec.ImageID), zap.Error(err))
			}
		}
		rec.ImageID = publicID
	}

	if err := s.Repo.Update(rec); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	s.resolveImageURL(ctx, rec)
	return rec, nil
}

// Delete removes an article. Only the author may delete it.
func (s *DefaultBlogService) Delete(ctx context.Context, id, requesterID string) error {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch blog: %w", err)
	}
	if rec == nil {
		return newError(CodeNotFound, "blog not found")
	}
	if rec.AuthorID != requesterID {
		return newError(CodeForbidden, "only the author may modify this blog")
	}

	if rec.ImageID != "" && s.Storage != nil {
		if err := s.Storage.DeleteFile(ctx, rec.ImageID); err != nil {
			utils.GetLogger().Warn("Delete: failed to delete blog image",
				zap.String("imageId", rec.ImageID), zap.Error(err))
		}
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}

func (s *DefaultBlogService) resolveImageURL(ctx context.Context, rec *models.Blog) {
	if rec.ImageID == "" || s.Storage == nil {
		return
	}
	url, err := s.Storage.GetDownloadURL(ctx, "image", rec.ImageID)
	if err != nil {
		utils.GetLogger().Warn("failed to resolve blog image URL",
			zap.String("imageId", rec.ImageID), zap.Error(err))
		return
	}
	rec.ImageURL = url
}
