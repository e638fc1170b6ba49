package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"veriflow/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles captured-document uploads.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedKYCBuckets defines permitted buckets for captured KYC files.
var allowedKYCBuckets = map[string]bool{
	"documents": true,
	"selfies":   true,
}

// UploadDocumentHandler handles POST /api/storage/kyc/:bucket with a
// multipart "file" field. Files land in a per-bucket Cloudinary folder and
// are served through signed, short-lived URLs only.
func (h *StorageHandler) UploadDocumentHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedKYCBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'documents' and 'selfies'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	destFolder := "kyc/" + bucket

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, destFolder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}

	downloadURL, err := h.StorageSvc.GetSecureDownloadURL(c, "image", publicID, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicId": publicID, "url": downloadURL})
}
