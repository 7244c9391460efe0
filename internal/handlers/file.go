package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvasiljevic/projekti-api/internal/database"
	apierrors "github.com/mvasiljevic/projekti-api/internal/errors"
	"github.com/mvasiljevic/projekti-api/internal/models"
	"github.com/mvasiljevic/projekti-api/internal/storage"
	"github.com/mvasiljevic/projekti-api/internal/utils"
)

// FileHandler serves file upload, download and metadata listing.
type FileHandler struct {
	store   storage.ObjectStore
	baseURL string
}

func NewFileHandler(store storage.ObjectStore, baseURL string) *FileHandler {
	return &FileHandler{
		store:   store,
		baseURL: baseURL,
	}
}

// downloadURL builds the public URL under which a stored object is served.
func downloadURL(baseURL, key string) string {
	return fmt.Sprintf("%s/files?key=%s", baseURL, url.QueryEscape(key))
}

// saveProjectFile uploads one multipart file to the object store and records
// its metadata row. Returns the stored file descriptor for the response body.
func saveProjectFile(ctx context.Context, store storage.ObjectStore, baseURL string, projectID uint64, userID *uint64, fh *multipart.FileHeader) (gin.H, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", fh.Filename, err)
	}
	defer src.Close()

	key := utils.ObjectKey(projectID, time.Now(), fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := store.Upload(ctx, key, src, fh.Size, contentType); err != nil {
		return nil, err
	}

	record := models.ProjectFile{
		ProjectID:    projectID,
		UserID:       userID,
		ObjectName:   key,
		OriginalName: fh.Filename,
		MimeType:     contentType,
		SizeBytes:    fh.Size,
	}
	if err := database.GetDB().Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save metadata for %q: %w", key, err)
	}

	return gin.H{
		"object_name":   key,
		"original_name": fh.Filename,
		"mime_type":     contentType,
		"size_bytes":    fh.Size,
		"url":           downloadURL(baseURL, key),
	}, nil
}

// Upload stores a single file (multipart field "file") for a project.
func (h *FileHandler) Upload(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID projekta")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Fajl je obavezan")
		return
	}

	var userID *uint64
	if v := c.PostForm("userId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			userID = &id
		}
	}

	desc, err := saveProjectFile(c, h.store, h.baseURL, projectID, userID, fh)
	if err != nil {
		log.Printf("Error uploading file %q for project %d: %v", fh.Filename, projectID, err)
		apierrors.InternalError(c, "Greška pri čuvanju fajla")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file":    desc,
	})
}

// DownloadByKey streams an object by its full storage key (?key=...).
func (h *FileHandler) DownloadByKey(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		apierrors.BadRequest(c, "key je obavezan")
		return
	}
	h.stream(c, key)
}

// DownloadByPath reconstructs the storage key from the route:
// /files/:projectId/:filename maps to project-<projectId>/<filename>.
func (h *FileHandler) DownloadByPath(c *gin.Context) {
	key := fmt.Sprintf("project-%s/%s", c.Param("projectId"), c.Param("filename"))
	h.stream(c, key)
}

func (h *FileHandler) stream(c *gin.Context, key string) {
	obj, err := h.store.Download(c, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			apierrors.NotFound(c, "Fajl nije pronađen")
			return
		}
		log.Printf("Error downloading %q: %v", key, err)
		apierrors.InternalError(c, "Greška pri preuzimanju fajla")
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

// ListProjectFiles returns a project's stored file metadata with download URLs.
func (h *FileHandler) ListProjectFiles(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Nevažeći ID projekta")
		return
	}

	var files []models.ProjectFile
	if err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&files).Error; err != nil {
		log.Printf("Error listing files for project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	out := make([]gin.H, 0, len(files))
	for _, f := range files {
		out = append(out, gin.H{
			"id":            f.ID,
			"object_name":   f.ObjectName,
			"original_name": f.OriginalName,
			"mime_type":     f.MimeType,
			"size_bytes":    f.SizeBytes,
			"created_at":    f.CreatedAt,
			"url":           downloadURL(h.baseURL, f.ObjectName),
		})
	}

	c.JSON(http.StatusOK, gin.H{"files": out})
}
