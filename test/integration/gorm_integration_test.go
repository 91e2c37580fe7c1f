package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-dashboard-be/internal/constant"
	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/memory"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"
	"ai-dashboard-be/internal/service"
	"ai-dashboard-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.DocumentEmbeddingRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Embedding Repository", func(t *testing.T) {
		count, err := uow.DocumentEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentEmbedding count: %d", count)
	})

	t.Run("Transactional chat session rollback", func(t *testing.T) {
		ctx := context.Background()

		now := time.Now()
		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		err = uow.Begin(ctx)
		assert.NoError(t, err)

		session := &entity.ChatSession{
			Id:           uuid.New(),
			UserId:       user.Id,
			Title:        "Rollback check",
			Preview:      "Rollback check",
			LastActiveAt: now,
			CreatedAt:    now,
		}
		err = uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		message := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Role:          constant.RoleUser,
			Content:       "hello",
			CreatedAt:     now,
		}
		err = uow.ChatMessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		err = uow.Rollback()
		assert.NoError(t, err)

		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		assert.NoError(t, err)
		assert.Nil(t, found, "rolled back session must not be visible")
	})

	t.Run("Link upsert updates context flag in place", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-link-" + uuid.New().String() + "@example.com",
			FullName: "Link Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		now := time.Now()
		session := &entity.ChatSession{
			Id:           uuid.New(),
			UserId:       user.Id,
			Title:        "Upsert check",
			Preview:      "Upsert check",
			LastActiveAt: now,
			CreatedAt:    now,
		}
		assert.NoError(t, uow.ChatSessionRepository().Create(ctx, session))
		defer uow.ChatSessionRepository().Delete(ctx, session.Id)

		document := &entity.Document{
			Id:         uuid.New(),
			Name:       "upsert.txt",
			Type:       "TXT",
			SizeLabel:  "0.1 MB",
			UserId:     user.Id,
			UploadedAt: now,
		}
		assert.NoError(t, uow.DocumentRepository().Create(ctx, document))
		defer uow.DocumentRepository().Delete(ctx, document.Id)

		link := &entity.ChatDocumentLink{
			Id:              uuid.New(),
			ChatSessionId:   session.Id,
			DocumentId:      document.Id,
			IsContextActive: true,
			LinkedAt:        now,
		}
		assert.NoError(t, uow.ChatDocumentLinkRepository().Upsert(ctx, link))
		defer uow.ChatDocumentLinkRepository().DeleteByPair(ctx, session.Id, document.Id)

		// Same pair again with the flag flipped
		again := &entity.ChatDocumentLink{
			Id:              uuid.New(),
			ChatSessionId:   session.Id,
			DocumentId:      document.Id,
			IsContextActive: false,
			LinkedAt:        now,
		}
		assert.NoError(t, uow.ChatDocumentLinkRepository().Upsert(ctx, again))

		links, err := uow.ChatDocumentLinkRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionId: session.Id},
		)
		assert.NoError(t, err)
		assert.Len(t, links, 1)
		assert.False(t, links[0].IsContextActive)
	})

	t.Run("Draft persists at most once", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-draft-" + uuid.New().String() + "@example.com",
			FullName: "Draft Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		sessionRepo := memory.NewSessionRepository()
		chatService := service.NewChatService(uowFactory, sessionRepo, nil, nil, nil)

		firstId, err := chatService.PersistDraft(ctx, user.Id, "hello there")
		assert.NoError(t, err)
		defer uow.ChatSessionRepository().Delete(ctx, firstId)

		// A second send racing the first must reuse the session.
		secondId, err := chatService.PersistDraft(ctx, user.Id, "hello again")
		assert.NoError(t, err)
		assert.Equal(t, firstId, secondId)

		sessions, err := uow.ChatSessionRepository().FindAll(ctx,
			specification.OwnedBy{UserId: user.Id},
		)
		assert.NoError(t, err)
		assert.Len(t, sessions, 1)
	})

	t.Run("Unknown-id deletes are silent no-ops", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-noop-" + uuid.New().String() + "@example.com",
			FullName: "Noop Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		sessionRepo := memory.NewSessionRepository()
		contextService := service.NewContextService(uowFactory, sessionRepo)
		folderService := service.NewFolderService(uowFactory, contextService)
		chatService := service.NewChatService(uowFactory, sessionRepo, contextService, nil, nil)

		assert.NoError(t, folderService.Delete(ctx, user.Id, dto.FolderKindChat, uuid.New()))
		assert.NoError(t, folderService.Delete(ctx, user.Id, dto.FolderKindDocument, uuid.New()))
		assert.NoError(t, chatService.DeleteSession(ctx, user.Id, uuid.New()))
	})
}
