package services

import (
	stdctx "context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

const (
	MaxReferenceSize    = 20 * 1024 * 1024
	referenceURLExpiry  = time.Hour
	referenceKeyPrefix  = "references"
	defaultDocumentMIME = "application/octet-stream"
)

var referenceExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type blobStore interface {
	UploadFile(ctx stdctx.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error)
	GetFileURL(ctx stdctx.Context, objectName string, expiry time.Duration) (string, error)
	DeleteFile(ctx stdctx.Context, objectName string) error
}

// ReferenceService keeps users' study documents in the object store.
type ReferenceService struct {
	context.DefaultService
	blobs      blobStore
	references *repositories.ReferenceRepository
	now        func() time.Time
}

const REFERENCE_SVC = "reference_svc"

func (svc ReferenceService) Id() string {
	return REFERENCE_SVC
}

func (svc *ReferenceService) Start() error {
	svc.blobs = svc.Service(MINIO_SVC).(*MinIOService)
	svc.references = repositories.NewReferenceRepository(svc.Service(DATABASE_SVC).(*DatabaseService).Db())
	svc.now = time.Now
	return nil
}

func NewReferenceService(blobs blobStore, references *repositories.ReferenceRepository, now func() time.Time) *ReferenceService {
	if now == nil {
		now = time.Now
	}
	return &ReferenceService{blobs: blobs, references: references, now: now}
}

// ReferenceType classifies an upload by its content type.
func ReferenceType(contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return shared.ReferenceTypePDF
	}
	return shared.ReferenceTypeDoc
}

// ReferenceKey is the object key for a user's upload.
func ReferenceKey(userID string, at time.Time, filename string) string {
	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%s/%d-%s", referenceKeyPrefix, userID, at.UnixMilli(), name)
}

func (svc *ReferenceService) Upload(ctx stdctx.Context, userID, title string, file *multipart.FileHeader) (*dto.ReferenceResponse, error) {
	if file == nil {
		return nil, shared.NewBadRequestError(nil, "File is required")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !referenceExtensions[ext] {
		return nil, shared.NewBadRequestError(nil, "Invalid file format. Supported: PDF, DOC, DOCX")
	}
	if file.Size > MaxReferenceSize {
		return nil, shared.NewBadRequestError(nil, "File too large. Maximum size: 20MB")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultDocumentMIME
	}
	if ext == ".pdf" {
		contentType = "application/pdf"
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Failed to read file")
	}
	defer src.Close()

	key := ReferenceKey(userID, svc.now(), file.Filename)
	if _, err := svc.blobs.UploadFile(ctx, key, src, file.Size, contentType); err != nil {
		return nil, shared.NewServiceUnavailableError(err, "Failed to store file")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	}

	ref := &model.Reference{
		UserID:      userID,
		Title:       title,
		Type:        ReferenceType(contentType),
		ObjectKey:   key,
		ContentType: contentType,
		Size:        file.Size,
	}
	if err := svc.references.CreateReference(ctx, ref); err != nil {
		if delErr := svc.blobs.DeleteFile(ctx, key); delErr != nil {
			log.WithError(delErr).WithField("key", key).Warn("Failed to remove orphaned reference object")
		}
		return nil, shared.NewInternalError(err, "Failed to save reference")
	}

	log.WithFields(log.Fields{"user_id": userID, "reference_id": ref.ID, "size": ref.Size}).Info("Reference uploaded")
	resp := svc.toResponse(ctx, ref)
	return &resp, nil
}

// List returns the caller's references, newest first, with download links.
func (svc *ReferenceService) List(ctx stdctx.Context, userID string) ([]dto.ReferenceResponse, error) {
	refs, err := svc.references.ListByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load references")
	}

	out := make([]dto.ReferenceResponse, len(refs))
	for i := range refs {
		out[i] = svc.toResponse(ctx, &refs[i])
	}
	return out, nil
}

// Delete removes the object and its metadata.
func (svc *ReferenceService) Delete(ctx stdctx.Context, userID, id string) error {
	ref, err := svc.references.GetReference(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(err, "Reference not found")
		}
		return shared.NewInternalError(err, "Failed to load reference")
	}
	if ref.UserID != userID {
		return shared.NewNotFoundError(nil, "Reference not found")
	}

	if err := svc.blobs.DeleteFile(ctx, ref.ObjectKey); err != nil {
		return shared.NewServiceUnavailableError(err, "Failed to delete file")
	}
	if err := svc.references.DeleteReference(ctx, ref.ID); err != nil {
		return shared.NewInternalError(err, "Failed to delete reference")
	}
	return nil
}

func (svc *ReferenceService) toResponse(ctx stdctx.Context, ref *model.Reference) dto.ReferenceResponse {
	resp := dto.ReferenceResponse{
		ID:          ref.ID,
		Title:       ref.Title,
		Type:        ref.Type,
		ContentType: ref.ContentType,
		Size:        ref.Size,
		CreatedAt:   ref.CreatedAt,
	}
	url, err := svc.blobs.GetFileURL(ctx, ref.ObjectKey, referenceURLExpiry)
	if err != nil {
		log.WithError(err).WithField("reference_id", ref.ID).Warn("Failed to presign reference URL")
		return resp
	}
	resp.URL = url
	return resp
}
