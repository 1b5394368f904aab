package infrastructure

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthmate-org/healthmate-api/schema"
)

// SymptomMongoRepository implements usecase.SymptomRepository on the shared
// store client
type SymptomMongoRepository struct {
	*StoreClient
}

func NewSymptomMongoRepository(store *StoreClient) *SymptomMongoRepository {
	return &SymptomMongoRepository{StoreClient: store}
}

func (r *SymptomMongoRepository) InsertAnalysis(ctx context.Context, traceID string, analysis *schema.SymptomAnalysis) error {
	_, err := r.Collection(symptomsCollectionName).InsertOne(ctx, analysis)
	if err != nil {
		return fmt.Errorf("{%s} insert symptom analysis: %w", traceID, err)
	}
	return nil
}

func (r *SymptomMongoRepository) GetAnalyses(ctx context.Context, traceID string, userID string, limit int64) ([]schema.SymptomAnalysis, error) {
	opts := options.Find().
		SetSort(bson.D{primitive.E{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetComment(traceID)
	cursor, err := r.Collection(symptomsCollectionName).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	analyses := []schema.SymptomAnalysis{}
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}
