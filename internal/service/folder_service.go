package service

import (
	"context"
	"fmt"
	"time"

	"ai-dashboard-be/internal/constant"
	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFolderService interface {
	GetAll(ctx context.Context, userId uuid.UUID, kind string) ([]*dto.FolderResponse, error)
	Create(ctx context.Context, userId uuid.UUID, kind string, req *dto.CreateFolderRequest) (*dto.FolderResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, kind string, id uuid.UUID) error
	MoveEntities(ctx context.Context, userId uuid.UUID, kind string, req *dto.MoveEntitiesRequest) (*dto.MoveEntitiesResponse, error)
}

type folderService struct {
	uowFactory     unitofwork.RepositoryFactory
	contextService IContextService
}

func NewFolderService(uowFactory unitofwork.RepositoryFactory, contextService IContextService) IFolderService {
	return &folderService{
		uowFactory:     uowFactory,
		contextService: contextService,
	}
}

func validKind(kind string) error {
	if kind != dto.FolderKindChat && kind != dto.FolderKindDocument {
		return fmt.Errorf("unknown folder kind: %s", kind)
	}
	return nil
}

func (s *folderService) GetAll(ctx context.Context, userId uuid.UUID, kind string) ([]*dto.FolderResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result := make([]*dto.FolderResponse, 0)

	if kind == dto.FolderKindChat {
		folders, err := uow.ChatFolderRepository().FindAll(ctx,
			specification.OwnedBy{UserId: userId},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		for _, f := range folders {
			count, err := uow.ChatSessionRepository().Count(ctx,
				specification.FilterBy{Field: "chat_folder_id", Value: f.Id},
			)
			if err != nil {
				return nil, err
			}
			result = append(result, &dto.FolderResponse{
				Id:        f.Id,
				Name:      f.Name,
				Color:     f.ColorTag,
				Kind:      kind,
				ItemCount: int(count),
				CreatedAt: f.CreatedAt,
			})
		}
		return result, nil
	}

	folders, err := uow.DocumentFolderRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		count, err := uow.DocumentRepository().Count(ctx,
			specification.FilterBy{Field: "document_folder_id", Value: f.Id},
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.FolderResponse{
			Id:        f.Id,
			Name:      f.Name,
			Color:     f.ColorTag,
			Kind:      kind,
			ItemCount: int(count),
			CreatedAt: f.CreatedAt,
		})
	}
	return result, nil
}

func (s *folderService) Create(ctx context.Context, userId uuid.UUID, kind string, req *dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if kind == dto.FolderKindChat {
		color := req.Color
		if color == "" {
			count, err := uow.ChatFolderRepository().Count(ctx, specification.OwnedBy{UserId: userId})
			if err != nil {
				return nil, err
			}
			color = constant.FolderPalette[int(count)%len(constant.FolderPalette)]
		}
		folder := &entity.ChatFolder{
			Id:        uuid.New(),
			Name:      req.Name,
			ColorTag:  color,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.ChatFolderRepository().Create(ctx, folder); err != nil {
			return nil, err
		}
		return &dto.FolderResponse{
			Id:        folder.Id,
			Name:      folder.Name,
			Color:     folder.ColorTag,
			Kind:      kind,
			CreatedAt: folder.CreatedAt,
		}, nil
	}

	color := req.Color
	if color == "" {
		count, err := uow.DocumentFolderRepository().Count(ctx, specification.OwnedBy{UserId: userId})
		if err != nil {
			return nil, err
		}
		color = constant.FolderPalette[int(count)%len(constant.FolderPalette)]
	}
	folder := &entity.DocumentFolder{
		Id:        uuid.New(),
		Name:      req.Name,
		ColorTag:  color,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentFolderRepository().Create(ctx, folder); err != nil {
		return nil, err
	}
	return &dto.FolderResponse{
		Id:        folder.Id,
		Name:      folder.Name,
		Color:     folder.ColorTag,
		Kind:      kind,
		CreatedAt: folder.CreatedAt,
	}, nil
}

// Delete removes a folder and unfiles its members. Deleting a document
// folder also drops it from the user's active-context selection.
func (s *folderService) Delete(ctx context.Context, userId uuid.UUID, kind string, id uuid.UUID) error {
	if err := validKind(kind); err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if kind == dto.FolderKindChat {
		folder, err := uow.ChatFolderRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.OwnedBy{UserId: userId},
		)
		if err != nil {
			return err
		}
		if folder == nil {
			// Unknown-id deletes are silent no-ops.
			return nil
		}

		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		if err := uow.ChatSessionRepository().ClearFolderReference(ctx, id); err != nil {
			return err
		}
		if err := uow.ChatFolderRepository().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Commit()
	}

	folder, err := uow.DocumentFolderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().ClearFolderReference(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentFolderRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.contextService.RemoveFolder(userId, id)
	return nil
}

func (s *folderService) MoveEntities(ctx context.Context, userId uuid.UUID, kind string, req *dto.MoveEntitiesRequest) (*dto.MoveEntitiesResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if kind == dto.FolderKindChat {
		if req.FolderId != nil {
			folder, err := uow.ChatFolderRepository().FindOne(ctx,
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

		sessions, err := uow.ChatSessionRepository().FindAll(ctx,
			specification.ByIDs{IDs: req.Ids},
			specification.OwnedBy{UserId: userId},
		)
		if err != nil {
			return nil, err
		}

		moved := 0
		for _, session := range sessions {
			session.ChatFolderId = req.FolderId
			if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
				return nil, err
			}
			moved++
		}
		return &dto.MoveEntitiesResponse{Moved: moved}, nil
	}

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

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByIDs{IDs: req.Ids},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	ownedIds := make([]uuid.UUID, len(documents))
	for i, d := range documents {
		ownedIds[i] = d.Id
	}

	if err := uow.DocumentRepository().MoveToFolder(ctx, ownedIds, req.FolderId); err != nil {
		return nil, err
	}
	return &dto.MoveEntitiesResponse{Moved: len(ownedIds)}, nil
}
