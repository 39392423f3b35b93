package blog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediq/models"
)

type fakeBlogRepo struct {
	blogs map[string]*models.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*models.Blog)}
}

func (r *fakeBlogRepo) Create(blog *models.Blog) error {
	cp := *blog
	r.blogs[blog.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) GetByID(id string) (*models.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBlogRepo) List(category string) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range r.blogs {
		if category == "" || b.Category == category {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) ListByAuthor(authorID string) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range r.blogs {
		if b.AuthorID == authorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(blog *models.Blog) error {
	if _, ok := r.blogs[blog.ID]; !ok {
		return fmt.Errorf("blog not found")
	}
	cp := *blog
	r.blogs[blog.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) Delete(id string) error {
	if _, ok := r.blogs[id]; !ok {
		return fmt.Errorf("blog not found")
	}
	delete(r.blogs, id)
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	s.uploaded = append(s.uploaded, localFilePath)
	return "public-" + localFilePath, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "https://cdn.example/" + publicID, nil
}

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.example/signed/" + publicID, nil
}

const authorID = "doc-1"

func newTestService() (*DefaultBlogService, *fakeBlogRepo) {
	repo := newFakeBlogRepo()
	return &DefaultBlogService{Repo: repo, Storage: &fakeStorage{}}, repo
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.Create(context.Background(), authorID, CreateInput{
		Title:    "Managing hypertension",
		Content:  "Lifestyle first.",
		Category: "cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, authorID, rec.AuthorID)

	got, err := svc.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), authorID, CreateInput{Content: "no title"})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)

	_, err = svc.Create(context.Background(), authorID, CreateInput{Title: "no content"})
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)
}

func TestUpdateAuthorOnly(t *testing.T) {
	svc, repo := newTestService()

	rec, err := svc.Create(context.Background(), authorID, CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	newTitle := "updated"
	_, err = svc.Update(context.Background(), rec.ID, "doc-2", UpdateInput{Title: &newTitle})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, se.Code)
	assert.Equal(t, "t", repo.blogs[rec.ID].Title)

	updated, err := svc.Update(context.Background(), rec.ID, authorID, UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Title)
}

func TestDeleteAuthorOnly(t *testing.T) {
	svc, repo := newTestService()

	rec, err := svc.Create(context.Background(), authorID, CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), rec.ID, "doc-2")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, se.Code)
	assert.Len(t, repo.blogs, 1)

	require.NoError(t, svc.Delete(context.Background(), rec.ID, authorID))
	assert.Empty(t, repo.blogs)
}

func TestGetMissing(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "missing")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}

func TestListByCategory(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), authorID, CreateInput{Title: "a", Content: "c", Category: "cardiology"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), authorID, CreateInput{Title: "b", Content: "c", Category: "dermatology"})
	require.NoError(t, err)

	recs, err := svc.List(context.Background(), "cardiology")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].Title)

	recs, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
