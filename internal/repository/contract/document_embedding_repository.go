package contract

import (
	"context"

	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding pairs an embedding with its cosine similarity
// to the query vector.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar ranks chunks of the given documents by cosine
	// distance to the query embedding.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, documentIds []uuid.UUID) ([]*entity.DocumentEmbedding, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, documentIds []uuid.UUID, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
