package infrastructure

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthmate-org/healthmate-api/schema"
)

const sessionListLimit = 50

// ChatMongoRepository implements usecase.ChatRepository on the shared store
// client
type ChatMongoRepository struct {
	*StoreClient
}

func NewChatMongoRepository(store *StoreClient) *ChatMongoRepository {
	return &ChatMongoRepository{StoreClient: store}
}

func (r *ChatMongoRepository) InsertMessages(ctx context.Context, traceID string, messages []schema.ChatMessage) error {
	docs := make([]interface{}, len(messages))
	for i := range messages {
		docs[i] = messages[i]
	}
	_, err := r.Collection(chatsCollectionName).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("{%s} insert chat messages: %w", traceID, err)
	}
	return nil
}

// GetMessages returns the chat log in chronological order, optionally scoped
// to one session
func (r *ChatMongoRepository) GetMessages(ctx context.Context, traceID string, userID string, sessionID string, limit int64) ([]schema.ChatMessage, error) {
	query := bson.M{"userId": userID}
	if sessionID != "" {
		query["sessionId"] = sessionID
	}
	opts := options.Find().
		SetSort(bson.D{primitive.E{Key: "createdAt", Value: 1}}).
		SetLimit(limit).
		SetComment(traceID)
	cursor, err := r.Collection(chatsCollectionName).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	messages := []schema.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteMessages removes one session, or every message of the user when
// sessionID is empty
func (r *ChatMongoRepository) DeleteMessages(ctx context.Context, traceID string, userID string, sessionID string) (int64, error) {
	query := bson.M{"userId": userID}
	if sessionID != "" {
		query["sessionId"] = sessionID
	}
	result, err := r.Collection(chatsCollectionName).DeleteMany(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("{%s} delete chat messages: %w", traceID, err)
	}
	return result.DeletedCount, nil
}

// generateSessionPipeline reduces the user's chat log to one document per
// session: createdAt boundaries, row count and the first user-authored
// content. Sorted by last message descending, capped to the most recent 50.
func generateSessionPipeline(userID string) []bson.M {
	return []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$sort": bson.M{"createdAt": 1}},
		{"$group": bson.M{
			"_id":          "$sessionId",
			"firstMessage": bson.M{"$min": "$createdAt"},
			"lastMessage":  bson.M{"$max": "$createdAt"},
			"messageCount": bson.M{"$sum": 1},
			"userContents": bson.M{"$push": bson.M{
				"$cond": []interface{}{
					bson.M{"$eq": []string{"$role", "user"}},
					"$content",
					nil,
				},
			}},
		}},
		{"$project": bson.M{
			"_id":          1,
			"firstMessage": 1,
			"lastMessage":  1,
			"messageCount": 1,
			"preview": bson.M{"$first": bson.M{"$filter": bson.M{
				"input": "$userContents",
				"as":    "content",
				"cond":  bson.M{"$ne": []interface{}{"$$content", nil}},
			}}},
		}},
		{"$sort": bson.M{"lastMessage": -1}},
		{"$limit": sessionListLimit},
	}
}

func (r *ChatMongoRepository) GetSessionGroups(ctx context.Context, traceID string, userID string) ([]schema.SessionGroup, error) {
	opts := options.Aggregate().SetComment(traceID)
	cursor, err := r.Collection(chatsCollectionName).Aggregate(ctx, generateSessionPipeline(userID), opts)
	if err != nil {
		return nil, err
	}
	groups := []schema.SessionGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
