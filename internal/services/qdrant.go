package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantService maintains the candidate resume vector index. One point per
// candidate, keyed by the candidate's UUID so re-applying upserts in place.
type QdrantService interface {
	InitCollection() error
	UpsertCandidate(ctx context.Context, candidateID, jobID, name string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]CandidateMatch, error)
	DeleteByJob(ctx context.Context, jobID string) error
}

type CandidateMatch struct {
	CandidateID string
	Name        string
	Score       float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
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

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
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

// UpsertCandidate implements QdrantService.
func (q *qdrantService) UpsertCandidate(ctx context.Context, candidateID, jobID, name string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(candidateID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"candidate_id": candidateID,
			"job_id":       jobID,
			"name":         name,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]CandidateMatch, error) {
	var filter *qdrant.Filter
	if jobID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_id", jobID),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var matches []CandidateMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := CandidateMatch{
			Score: point.Score,
		}

		if id, ok := payload["candidate_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				match.CandidateID = val.StringValue
			}
		}

		if name, ok := payload["name"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				match.Name = val.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteByJob implements QdrantService. Called when a job is deleted so the
// vector index stays consistent with the relational cascade.
func (q *qdrantService) DeleteByJob(ctx context.Context, jobID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete job vectors: %w", err)
	}

	return nil
}
