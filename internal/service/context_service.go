package service

import (
	"context"
	"errors"

	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/repository/memory"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"
	"ai-dashboard-be/pkg/contextset"
	"ai-dashboard-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContextService interface {
	GetState(ctx context.Context, userId uuid.UUID) (*dto.ContextStateResponse, error)
	Toggle(ctx context.Context, userId uuid.UUID, req *dto.ToggleContextRequest) (*dto.ToggleContextResponse, error)
	Replace(ctx context.Context, userId uuid.UUID, req *dto.ReplaceContextRequest) (*dto.ContextStateResponse, error)
	// RemoveFolder drops a deleted folder from the user's selection.
	RemoveFolder(userId uuid.UUID, folderId uuid.UUID)
	// Resolve snapshots the document ids in scope for the open chat
	// (or the draft when chatSessionId is nil).
	Resolve(ctx context.Context, userId uuid.UUID, chatSessionId *uuid.UUID) ([]uuid.UUID, error)
}

type contextService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
}

func NewContextService(uowFactory unitofwork.RepositoryFactory, sessionRepo *memory.SessionRepository) IContextService {
	return &contextService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
	}
}

// activeSetFromState rebuilds the pure set from the cached session.
// The general group is always in, regardless of the cached flag.
func activeSetFromState(state *store.ContextState) *contextset.ActiveSet {
	set := contextset.NewActiveSet()
	if state == nil {
		return set
	}
	for _, raw := range state.ActiveFolderIds {
		if id, err := uuid.Parse(raw); err == nil {
			set.Toggle(contextset.Folder(id))
		}
	}
	return set
}

func (s *contextService) GetState(ctx context.Context, userId uuid.UUID) (*dto.ContextStateResponse, error) {
	session := s.sessionRepo.GetOrCreate(userId.String())

	res := &dto.ContextStateResponse{
		General:   session.Context.GeneralActive,
		FolderIds: make([]uuid.UUID, 0, len(session.Context.ActiveFolderIds)),
	}
	for _, raw := range session.Context.ActiveFolderIds {
		if id, err := uuid.Parse(raw); err == nil {
			res.FolderIds = append(res.FolderIds, id)
		}
	}
	return res, nil
}

func (s *contextService) Toggle(ctx context.Context, userId uuid.UUID, req *dto.ToggleContextRequest) (*dto.ToggleContextResponse, error) {
	if !req.General && req.FolderId == nil {
		return nil, errors.New("folder_id is required unless toggling the general group")
	}

	session := s.sessionRepo.GetOrCreate(userId.String())

	if req.General {
		// The unfiled group cannot be deselected.
		session.Context.GeneralActive = true
		s.sessionRepo.Save(session)
		return &dto.ToggleContextResponse{Active: true}, nil
	}

	// Verify the folder exists and belongs to the user before toggling.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.DocumentFolderRepository().FindOne(ctx,
		specification.ByID{ID: *req.FolderId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "folder not found")
	}

	target := req.FolderId.String()
	for i, raw := range session.Context.ActiveFolderIds {
		if raw == target {
			session.Context.ActiveFolderIds = append(
				session.Context.ActiveFolderIds[:i],
				session.Context.ActiveFolderIds[i+1:]...,
			)
			s.sessionRepo.Save(session)
			return &dto.ToggleContextResponse{Active: false}, nil
		}
	}
	session.Context.ActiveFolderIds = append(session.Context.ActiveFolderIds, target)
	s.sessionRepo.Save(session)
	return &dto.ToggleContextResponse{Active: true}, nil
}

func (s *contextService) Replace(ctx context.Context, userId uuid.UUID, req *dto.ReplaceContextRequest) (*dto.ContextStateResponse, error) {
	session := s.sessionRepo.GetOrCreate(userId.String())

	session.Context.GeneralActive = true
	session.Context.ActiveFolderIds = session.Context.ActiveFolderIds[:0]
	for _, id := range req.FolderIds {
		session.Context.ActiveFolderIds = append(session.Context.ActiveFolderIds, id.String())
	}
	s.sessionRepo.Save(session)

	return s.GetState(ctx, userId)
}

func (s *contextService) RemoveFolder(userId uuid.UUID, folderId uuid.UUID) {
	session, found := s.sessionRepo.Get(userId.String())
	if !found {
		return
	}
	target := folderId.String()
	for i, raw := range session.Context.ActiveFolderIds {
		if raw == target {
			session.Context.ActiveFolderIds = append(
				session.Context.ActiveFolderIds[:i],
				session.Context.ActiveFolderIds[i+1:]...,
			)
			break
		}
	}
	s.sessionRepo.Save(session)
}

func (s *contextService) Resolve(ctx context.Context, userId uuid.UUID, chatSessionId *uuid.UUID) ([]uuid.UUID, error) {
	session := s.sessionRepo.GetOrCreate(userId.String())
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OwnedBy{UserId: userId})
	if err != nil {
		return nil, err
	}

	docs := make([]contextset.Doc, len(documents))
	for i, d := range documents {
		docs[i] = contextset.Doc{Id: d.Id, FolderId: d.DocumentFolderId}
	}

	var src contextset.Source
	if chatSessionId == nil {
		var pending []uuid.UUID
		for _, raw := range session.Draft.PendingUploadIds {
			if id, err := uuid.Parse(raw); err == nil {
				pending = append(pending, id)
			}
		}
		src = contextset.DraftUploads(pending)
	} else {
		links, err := uow.ChatDocumentLinkRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionId: *chatSessionId},
		)
		if err != nil {
			return nil, err
		}
		setLinks := make([]contextset.Link, len(links))
		for i, l := range links {
			setLinks[i] = contextset.Link{DocumentId: l.DocumentId, IsContextActive: l.IsContextActive}
		}
		src = contextset.ChatLinks(setLinks)
	}

	return contextset.Resolve(activeSetFromState(session.Context), docs, src), nil
}
