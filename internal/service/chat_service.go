package service

import (
	"context"
	"log"
	"time"

	"ai-dashboard-be/internal/constant"
	"ai-dashboard-be/internal/dto"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/memory"
	"ai-dashboard-be/internal/repository/specification"
	"ai-dashboard-be/internal/repository/unitofwork"
	"ai-dashboard-be/pkg/embedding"
	"ai-dashboard-be/pkg/llm"
	"ai-dashboard-be/pkg/rag/prompt"
	"ai-dashboard-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SendChatResult carries the outcome of a (possibly streamed) send.
type SendChatResult struct {
	ChatSessionId uuid.UUID
	Answer        string
	Fallback      bool
}

type IChatService interface {
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.HistoryItemResponse, error)
	// PersistDraft turns the user's draft into a real session, linking
	// pending uploads as active context. Callers that need the session
	// id before streaming starts use this ahead of SendChat.
	PersistDraft(ctx context.Context, userId uuid.UUID, firstMessage string) (uuid.UUID, error)
	// SendChat streams the answer through onChunk (may be nil) and
	// persists both sides of the exchange. A nil ChatSessionId saves
	// the current draft first.
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, onChunk llm.StreamHandler) (*SendChatResult, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error

	GetLinks(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.LinkResponse, error)
	LinkDocument(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.LinkDocumentRequest) (*dto.LinkResponse, error)
	UnlinkDocument(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, documentId uuid.UUID) error

	GetDraft(userId uuid.UUID) *dto.DraftStateResponse
	ResetDraft(userId uuid.UUID)
	AttachDraftDocument(ctx context.Context, userId uuid.UUID, req *dto.DraftAttachRequest) error
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	sessionRepo       *memory.SessionRepository
	contextService    IContextService
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	promptBuilder     *prompt.Builder
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	contextService IContextService,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		sessionRepo:       sessionRepo,
		contextService:    contextService,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		promptBuilder:     prompt.NewBuilder(),
	}
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "last_active_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*dto.SessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = &dto.SessionResponse{
			Id:        s.Id,
			Title:     s.Title,
			Preview:   s.Preview,
			TimeLabel: utils.FormatRelativeLabel(s.LastActiveAt, now),
			FolderId:  s.ChatFolderId,
		}
	}
	return result, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.HistoryItemResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionId: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.HistoryItemResponse, len(messages))
	for i, m := range messages {
		result[i] = &dto.HistoryItemResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return result, nil
}

// persistDraft turns the in-memory draft into a real session. The
// pending uploads become context-active links exactly once, cleared
// before any fallible call can cause a second pass to re-link them.
func (cs *chatService) persistDraft(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, firstMessage string) (*entity.ChatSession, error) {
	session := cs.sessionRepo.GetOrCreate(userId.String())

	// A draft persists at most once: a second send arriving before the
	// draft was reset reuses the session the first one created.
	if session.Draft.Persisted && session.OpenChatId != "" {
		if openId, parseErr := uuid.Parse(session.OpenChatId); parseErr == nil {
			existing, err := uow.ChatSessionRepository().FindOne(ctx,
				specification.ByID{ID: openId},
				specification.OwnedBy{UserId: userId},
			)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return existing, nil
			}
		}
	}

	now := time.Now()
	chat := &entity.ChatSession{
		Id:           uuid.New(),
		UserId:       userId,
		Title:        utils.TruncateWithEllipsis(firstMessage, constant.TitleMaxLen),
		Preview:      utils.TruncateWithEllipsis(firstMessage, constant.PreviewMaxLen),
		LastActiveAt: now,
		CreatedAt:    now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	pending := session.Draft.PendingUploadIds
	session.Draft.PendingUploadIds = nil
	session.Draft.Persisted = true
	session.OpenChatId = chat.Id.String()
	cs.sessionRepo.Save(session)

	for _, raw := range pending {
		docId, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		link := &entity.ChatDocumentLink{
			Id:              uuid.New(),
			ChatSessionId:   chat.Id,
			DocumentId:      docId,
			IsContextActive: true,
			LinkedAt:        now,
		}
		if err := uow.ChatDocumentLinkRepository().Upsert(ctx, link); err != nil {
			return nil, err
		}
	}

	return chat, nil
}

func (cs *chatService) PersistDraft(ctx context.Context, userId uuid.UUID, firstMessage string) (uuid.UUID, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	chat, err := cs.persistDraft(ctx, uow, userId, firstMessage)
	if err != nil {
		return uuid.Nil, err
	}
	return chat.Id, nil
}

func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, onChunk llm.StreamHandler) (*SendChatResult, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	var chat *entity.ChatSession
	var err error
	if req.ChatSessionId == nil {
		chat, err = cs.persistDraft(ctx, uow, userId, req.Message)
		if err != nil {
			return nil, err
		}
	} else {
		chat, err = uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: *req.ChatSessionId},
			specification.OwnedBy{UserId: userId},
		)
		if err != nil {
			return nil, err
		}
		if chat == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "chat session not found")
		}
	}

	// Snapshot the context scope before anything else; later toggles
	// must not affect this request.
	contextDocIds, err := cs.contextService.Resolve(ctx, userId, &chat.Id)
	if err != nil {
		return nil, err
	}

	// Persist the user's message first so it survives a model failure.
	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: chat.Id,
		Role:          constant.RoleUser,
		Content:       req.Message,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := cs.loadHistory(ctx, uow, chat.Id)
	if err != nil {
		return nil, err
	}

	grounded := cs.buildGroundedPrompt(ctx, uow, req.Message, contextDocIds)
	if len(history) > 0 {
		history[len(history)-1].Content = grounded
	}

	result := &SendChatResult{ChatSessionId: chat.Id}
	answer, err := cs.llmProvider.ChatStream(ctx, history, onChunk)
	if err != nil {
		log.Printf("[ERROR] LLM stream failed for session %s: %v", chat.Id, err)
		result.Fallback = true
		if onChunk != nil {
			// Deliver the fallback through the same channel the
			// caller is already reading.
			_ = onChunk(constant.FallbackAnswer)
		}
		// The caller saw every chunk already streamed plus the
		// fallback; the stored message must read the same.
		answer = finalizeAnswer(answer)
	}
	result.Answer = answer

	botMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: chat.Id,
		Role:          constant.RoleBot,
		Content:       answer,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, botMessage); err != nil {
		return nil, err
	}

	chat.LastActiveAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	return result, nil
}

// finalizeAnswer appends the fallback sentence to whatever the stream
// produced before it failed, so a later history load shows exactly
// what went over the wire.
func finalizeAnswer(partial string) string {
	return partial + constant.FallbackAnswer
}

func (cs *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionId: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, len(messages))
	for i, m := range messages {
		role := m.Role
		if role == constant.RoleBot {
			role = "assistant"
		}
		history[i] = llm.Message{Role: role, Content: m.Content}
	}
	return history, nil
}

// buildGroundedPrompt retrieves the most relevant chunks from the
// resolved context set. Retrieval failures degrade to the raw question.
func (cs *chatService) buildGroundedPrompt(ctx context.Context, uow unitofwork.UnitOfWork, question string, contextDocIds []uuid.UUID) string {
	if len(contextDocIds) == 0 {
		return question
	}

	embedRes, err := cs.embeddingProvider.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		log.Printf("[WARN] Query embedding failed: %v", err)
		return question
	}

	matches, err := uow.DocumentEmbeddingRepository().SearchSimilar(ctx, embedRes.Embedding.Values, 5, contextDocIds)
	if err != nil {
		log.Printf("[WARN] Similarity search failed: %v", err)
		return question
	}
	if len(matches) == 0 {
		return question
	}

	names := make(map[uuid.UUID]string)
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: contextDocIds})
	if err == nil {
		for _, d := range docs {
			names[d.Id] = d.Name
		}
	}

	chunks := make([]prompt.Chunk, len(matches))
	for i, m := range matches {
		name := names[m.DocumentId]
		if name == "" {
			name = "Document"
		}
		chunks[i] = prompt.Chunk{DocumentName: name, Content: m.Chunk}
	}
	return cs.promptBuilder.Build(question, chunks)
}

// DeleteSession removes the chat, its messages, and its links. If the
// chat was open, the user falls back to a fresh draft.
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if chat == nil {
		// Unknown-id deletes are silent no-ops.
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatDocumentLinkRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if session, found := cs.sessionRepo.Get(userId.String()); found {
		if session.OpenChatId == sessionId.String() {
			// Back to a fresh draft.
			session.OpenChatId = ""
			session.Draft.Persisted = false
		}
		cs.sessionRepo.Save(session)
	}
	return nil
}

func (cs *chatService) GetLinks(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.LinkResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}

	links, err := uow.ChatDocumentLinkRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionId: sessionId},
		specification.OrderBy{Field: "linked_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LinkResponse, len(links))
	for i, l := range links {
		result[i] = &dto.LinkResponse{
			Id:              l.Id,
			ChatSessionId:   l.ChatSessionId,
			DocumentId:      l.DocumentId,
			IsContextActive: l.IsContextActive,
			LinkedAt:        l.LinkedAt,
		}
	}
	return result, nil
}

func (cs *chatService) LinkDocument(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.LinkDocumentRequest) (*dto.LinkResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.DocumentId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	active := true
	if req.IsContextActive != nil {
		active = *req.IsContextActive
	}

	link := &entity.ChatDocumentLink{
		Id:              uuid.New(),
		ChatSessionId:   sessionId,
		DocumentId:      req.DocumentId,
		IsContextActive: active,
		LinkedAt:        time.Now(),
	}
	if err := uow.ChatDocumentLinkRepository().Upsert(ctx, link); err != nil {
		return nil, err
	}

	return &dto.LinkResponse{
		Id:              link.Id,
		ChatSessionId:   link.ChatSessionId,
		DocumentId:      link.DocumentId,
		IsContextActive: link.IsContextActive,
		LinkedAt:        link.LinkedAt,
	}, nil
}

func (cs *chatService) UnlinkDocument(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, documentId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if chat == nil {
		return nil
	}

	return uow.ChatDocumentLinkRepository().DeleteByPair(ctx, sessionId, documentId)
}

func (cs *chatService) GetDraft(userId uuid.UUID) *dto.DraftStateResponse {
	session := cs.sessionRepo.GetOrCreate(userId.String())

	res := &dto.DraftStateResponse{
		PendingUploadIds: make([]uuid.UUID, 0, len(session.Draft.PendingUploadIds)),
	}
	for _, raw := range session.Draft.PendingUploadIds {
		if id, err := uuid.Parse(raw); err == nil {
			res.PendingUploadIds = append(res.PendingUploadIds, id)
		}
	}
	return res
}

// ResetDraft discards the pending uploads and closes the open chat,
// returning the user to a clean draft.
func (cs *chatService) ResetDraft(userId uuid.UUID) {
	session := cs.sessionRepo.GetOrCreate(userId.String())
	session.Draft.PendingUploadIds = nil
	session.Draft.Persisted = false
	session.OpenChatId = ""
	cs.sessionRepo.Save(session)
}

func (cs *chatService) AttachDraftDocument(ctx context.Context, userId uuid.UUID, req *dto.DraftAttachRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.DocumentId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	session := cs.sessionRepo.GetOrCreate(userId.String())
	target := req.DocumentId.String()
	for _, raw := range session.Draft.PendingUploadIds {
		if raw == target {
			return nil
		}
	}
	session.Draft.PendingUploadIds = append(session.Draft.PendingUploadIds, target)
	cs.sessionRepo.Save(session)
	return nil
}
