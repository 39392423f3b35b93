package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"mediq/services/storage"
)

// StorageHandler exposes generic file endpoints backed by the object store.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for general file uploads.
var allowedBuckets = map[string]bool{
	"images":    true,
	"documents": true,
}

// UploadFileHandler handles general file uploads.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'images' and 'documents'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, "mediq/"+bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}

	resourceType := "image"
	if bucket == "documents" {
		resourceType = "raw"
	}
	downloadURL, err := h.StorageSvc.GetDownloadURL(c, resourceType, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publicId":    publicID,
		"downloadURL": downloadURL,
	})
}

// GetSecureDownloadURLHandler generates a signed, expiring download URL.
// Used by admins to review degree documents.
func (h *StorageHandler) GetSecureDownloadURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId query parameter is required"})
		return
	}
	resourceType := c.DefaultQuery("type", "raw")

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.StorageSvc.GetSecureDownloadURL(c, resourceType, publicID, expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate download URL", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadURL": url, "expiresIn": expiry.String()})
}
