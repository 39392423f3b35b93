package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"mediq/middleware"
	"mediq/utils"
)

func respondInternalError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}

// statusForCode maps service error codes to HTTP statuses. Codes share
// spelling across the service packages.
func statusForCode(code string) int {
	switch code {
	case "validation":
		return http.StatusBadRequest
	case "auth":
		return http.StatusUnauthorized
	case "paymentRequired":
		return http.StatusPaymentRequired
	case "forbidden":
		return http.StatusForbidden
	case "notFound":
		return http.StatusNotFound
	case "conflict", "slotUnavailable":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// saveUploadedTemp writes the named multipart file to the OS temp dir and
// returns its path with a cleanup func. A missing file is not an error; the
// returned path is empty in that case.
func saveUploadedTemp(c *gin.Context, field string) (string, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", func() {}, nil
		}
		return "", func() {}, err
	}
	tempPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		return "", func() {}, err
	}
	return tempPath, func() { os.Remove(tempPath) }, nil
}

// requesterFrom resolves the authenticated principal id regardless of which
// auth middleware admitted the request.
func requesterFrom(c *gin.Context) string {
	for _, key := range []string{middleware.CtxPatientID, middleware.CtxDoctorID, middleware.CtxAdminID} {
		if v, ok := c.Get(key); ok {
			if id, ok := v.(string); ok && id != "" {
				return id
			}
		}
	}
	return ""
}
