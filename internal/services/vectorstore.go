package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const (
	EntityTypeCandidate = "candidate"
	EntityTypeJob       = "job"
)

// VectorStore persists entity embeddings. Entities own their vectors; the
// store only keys them by {entityType, entityID}.
type VectorStore interface {
	InitCollection() error
	UpsertEmbedding(ctx context.Context, entityType string, entityID, companyID uuid.UUID, vector []float32) error
	// GetEmbedding returns (nil, nil) when the entity has no stored vector.
	GetEmbedding(ctx context.Context, entityType string, entityID uuid.UUID) ([]float32, error)
	// FetchEmbeddings retrieves a single chunk of ids; ids without a stored
	// vector are omitted from the result map.
	FetchEmbeddings(ctx context.Context, entityType string, entityIDs []uuid.UUID) (map[uuid.UUID][]float32, error)
	DeleteEmbedding(ctx context.Context, entityType string, entityID uuid.UUID) error
}

type qdrantVectorStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantVectorStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantVectorStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantVectorStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// pointID derives a stable point id from the entity identity so re-embedding
// an entity overwrites its previous vector.
func pointID(entityType string, entityID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(entityType+"/"+entityID.String()))
}

// UpsertEmbedding implements VectorStore.
func (q *qdrantVectorStore) UpsertEmbedding(ctx context.Context, entityType string, entityID, companyID uuid.UUID, vector []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID(entityType, entityID).String()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID.String(),
			"company_id":  companyID.String(),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	return nil
}

// GetEmbedding implements VectorStore.
func (q *qdrantVectorStore) GetEmbedding(ctx context.Context, entityType string, entityID uuid.UUID) ([]float32, error) {
	vectors, err := q.FetchEmbeddings(ctx, entityType, []uuid.UUID{entityID})
	if err != nil {
		return nil, err
	}
	return vectors[entityID], nil
}

// FetchEmbeddings implements VectorStore.
func (q *qdrantVectorStore) FetchEmbeddings(ctx context.Context, entityType string, entityIDs []uuid.UUID) (map[uuid.UUID][]float32, error) {
	if len(entityIDs) == 0 {
		return map[uuid.UUID][]float32{}, nil
	}

	ids := make([]*qdrant.PointId, 0, len(entityIDs))
	for _, entityID := range entityIDs {
		ids = append(ids, qdrant.NewID(pointID(entityType, entityID).String()))
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            ids,
		WithVectors:    qdrant.NewWithVectors(true),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch embeddings: %w", err)
	}

	vectors := make(map[uuid.UUID][]float32, len(points))
	for _, point := range points {
		payload := point.Payload

		idValue, ok := payload["entity_id"]
		if !ok {
			continue
		}
		entityID, err := uuid.Parse(idValue.GetStringValue())
		if err != nil {
			continue
		}

		vectorsOut := point.GetVectors()
		if vectorsOut == nil || vectorsOut.GetVector() == nil {
			continue
		}

		vectors[entityID] = vectorsOut.GetVector().GetData()
	}

	return vectors, nil
}

// DeleteEmbedding implements VectorStore.
func (q *qdrantVectorStore) DeleteEmbedding(ctx context.Context, entityType string, entityID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewID(pointID(entityType, entityID).String())},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete embedding: %w", err)
	}

	return nil
}
