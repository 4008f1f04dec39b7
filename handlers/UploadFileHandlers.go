package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"boqportal/comparison"
	"boqportal/models"
	"boqportal/repository"
	"boqportal/storage"

	"github.com/gin-gonic/gin"
)

const downloadLinkTTL = 15 * time.Minute

var (
	maxUploadSize int64 = 20 << 20
	// multipartOverhead is the slack allowed for boundaries and form fields.
	multipartOverhead int64 = 1 << 20
)

type uploadedFile struct {
	Name        string
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// uploadFormFile streams the multipart "file" field into object storage under
// projects/<id>/<kind>/. It writes the error response itself and returns false on failure.
func uploadFormFile(c *gin.Context, objects ObjectStore, projectID int, kind string) (*uploadedFile, bool) {
	if objects == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Object storage is not configured"})
		return nil, false
	}

	limit := maxUploadSize + multipartOverhead
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds the %d MB limit", maxUploadSize>>20)})
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds the %d MB limit", maxUploadSize>>20)})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded", "details": err.Error()})
		return nil, false
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds the %d MB limit", maxUploadSize>>20)})
		return nil, false
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file", "details": err.Error()})
		return nil, false
	}
	defer src.Close()

	out := &uploadedFile{
		Name:        filepath.Base(header.Filename),
		ContentType: contentTypeOf(header),
		Size:        header.Size,
	}
	out.Key = storage.ObjectKey(projectID, kind, out.Name)

	url, err := objects.Upload(c.Request.Context(), out.Key, src, out.ContentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to store file", "details": err.Error()})
		return nil, false
	}
	out.URL = url
	return out, true
}

// discardUpload removes an object whose metadata row could not be written.
func discardUpload(ctx context.Context, objects ObjectStore, key string) {
	if err := objects.Delete(ctx, key); err != nil {
		log.Printf("failed to remove orphaned upload %s: %v", key, err)
	}
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// UploadBOQ godoc
// @Summary      Upload BOQ document
// @Description  Stores a bill of quantities for one category of a project
// @Tags         boq
// @Accept       multipart/form-data
// @Produce      json
// @Param        project_id  path      int     true   "Project ID"
// @Param        file        formData  file    true   "BOQ document"
// @Param        category    formData  string  false  "Category (defaults to General)"
// @Success      201         {object}  models.BOQDocumentGorm
// @Failure      400         {object}  models.ErrorResponse
// @Failure      404         {object}  models.ErrorResponse
// @Failure      413         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/boq [post]
func UploadBOQ(projects repository.ProjectStore, objects ObjectStore, activity ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}
		if _, err := projects.GetProject(c.Request.Context(), projectID); err != nil {
			respondStoreError(c, err, "Project")
			return
		}

		file, ok := uploadFormFile(c, objects, projectID, "boq")
		if !ok {
			return
		}

		doc := &models.BOQDocumentGorm{
			ID:          repository.GenerateRandomNumber(),
			ProjectID:   projectID,
			FileName:    file.Name,
			ObjectKey:   file.Key,
			URL:         file.URL,
			ContentType: file.ContentType,
			Size:        file.Size,
			CreatedAt:   time.Now(),
		}
		if category := strings.TrimSpace(c.PostForm("category")); category != "" {
			doc.Category = &category
		}
		if user := currentUser(c); user != nil {
			doc.UploadedBy = user.FullName()
		}

		if err := projects.CreateBOQDocument(c.Request.Context(), doc); err != nil {
			discardUpload(context.WithoutCancel(c.Request.Context()), objects, file.Key)
			respondStoreError(c, err, "BOQ document")
			return
		}

		category := comparison.ParseCategory(doc.Category).Effective()
		recordActivity(c, activity, "BOQ", "Upload", fmt.Sprintf("Uploaded BOQ %s (%s)", doc.FileName, category), projectID)
		c.JSON(http.StatusCreated, doc)
	}
}

// ListBOQ godoc
// @Summary      List BOQ documents
// @Tags         boq
// @Produce      json
// @Param        project_id  path      int     true   "Project ID"
// @Param        category    query     string  false  "Effective category"
// @Success      200         {array}   models.BOQDocumentGorm
// @Router       /api/projects/{project_id}/boq [get]
func ListBOQ(projects repository.ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project_id")
		if !ok {
			return
		}
		docs, err := projects.ListBOQDocuments(c.Request.Context(), projectID, c.Query("category"))
		if err != nil {
			respondStoreError(c, err, "BOQ document")
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// DownloadBOQ godoc
// @Summary      Download BOQ document
// @Description  Redirects to a short-lived presigned URL
// @Tags         boq
// @Param        id   path  int  true  "BOQ document ID"
// @Success      307
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/boq/{id}/download [get]
func DownloadBOQ(projects repository.ProjectStore, objects ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if objects == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Object storage is not configured"})
			return
		}
		doc, err := projects.GetBOQDocument(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "BOQ document")
			return
		}
		url, err := objects.PresignGet(c.Request.Context(), doc.ObjectKey, downloadLinkTTL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create download link", "details": err.Error()})
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}
