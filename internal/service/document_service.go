package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-dashboard-be/internal/config"
	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/memory"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"
	"ai-dashboard-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Upload(ctx context.Context, userId uuid.UUID, filename string, data []byte, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessionRepo      *memory.SessionRepository
	publisherService IPublisherService
	cfg              *config.Config
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	publisherService IPublisherService,
	cfg *config.Config,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		sessionRepo:      sessionRepo,
		publisherService: publisherService,
		cfg:              cfg,
	}
}

func (s *documentService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "uploaded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		result[i] = &dto.DocumentResponse{
			Id:         d.Id,
			Name:       d.Name,
			Type:       d.Type,
			SizeLabel:  d.SizeLabel,
			FolderId:   d.DocumentFolderId,
			UploadedAt: d.UploadedAt,
		}
	}
	return result, nil
}

func (s *documentService) validateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, a := range s.cfg.Upload.AllowedExtensions {
		if ext == strings.TrimSpace(a) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("file type %s is not supported", ext)
	}
	if size > s.cfg.Upload.MaxSizeBytes {
		return fmt.Errorf("file exceeds the %d MB limit", s.cfg.Upload.MaxSizeBytes/(1024*1024))
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, filename string, data []byte, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	if err := s.validateUpload(filename, int64(len(data))); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.FolderId != nil {
		folder, err := uow.DocumentFolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.FolderId},
			specification.OwnedBy{UserId: userId},
		)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "target folder not found")
		}
	}

	docId := uuid.New()
	storagePath := filepath.Join(s.cfg.App.StorageDir, docId.String()+strings.ToLower(filepath.Ext(filename)))
	if err := os.MkdirAll(s.cfg.App.StorageDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(storagePath, data, 0o644); err != nil {
		return nil, err
	}

	document := &entity.Document{
		Id:               docId,
		Name:             filename,
		Type:             utils.FileTypeTag(filename),
		SizeLabel:        utils.FormatSizeLabel(int64(len(data))),
		StoragePath:      storagePath,
		DocumentFolderId: req.FolderId,
		UserId:           userId,
		UploadedAt:       time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	// Draft uploads become context-active links when the draft saves.
	if req.Pending {
		session := s.sessionRepo.GetOrCreate(userId.String())
		session.Draft.PendingUploadIds = append(session.Draft.PendingUploadIds, docId.String())
		s.sessionRepo.Save(session)
	}

	// Queue embedding work, best effort
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: docId})
	if err == nil {
		if pubErr := s.publisherService.Publish(ctx, payload); pubErr != nil {
			fmt.Printf("[WARN] Failed to queue embedding for document %s: %v\n", docId, pubErr)
		}
	}

	return &dto.UploadDocumentResponse{
		Id:        document.Id,
		Name:      document.Name,
		Type:      document.Type,
		SizeLabel: document.SizeLabel,
	}, nil
}

// Delete removes the document together with its links, embeddings, and
// any pending-draft reference.
func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		// Unknown-id deletes are silent no-ops.
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatDocumentLinkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Drop from the draft's pending uploads if present.
	if session, found := s.sessionRepo.Get(userId.String()); found {
		target := id.String()
		for i, raw := range session.Draft.PendingUploadIds {
			if raw == target {
				session.Draft.PendingUploadIds = append(
					session.Draft.PendingUploadIds[:i],
					session.Draft.PendingUploadIds[i+1:]...,
				)
				break
			}
		}
		s.sessionRepo.Save(session)
	}

	if document.StoragePath != "" {
		if rmErr := os.Remove(document.StoragePath); rmErr != nil && !os.IsNotExist(rmErr) {
			fmt.Printf("[WARN] Failed to remove stored file %s: %v\n", document.StoragePath, rmErr)
		}
	}
	return nil
}
