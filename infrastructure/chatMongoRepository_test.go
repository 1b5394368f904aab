package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestGenerateSessionPipeline(t *testing.T) {
	pipeline := generateSessionPipeline("user123")
	assert.Len(t, pipeline, 6)

	assert.Equal(t, bson.M{"$match": bson.M{"userId": "user123"}}, pipeline[0])
	// rows are replayed in insertion order so $push sees them chronologically
	assert.Equal(t, bson.M{"$sort": bson.M{"createdAt": 1}}, pipeline[1])

	group := pipeline[2]["$group"].(bson.M)
	assert.Equal(t, "$sessionId", group["_id"])
	assert.Equal(t, bson.M{"$min": "$createdAt"}, group["firstMessage"])
	assert.Equal(t, bson.M{"$max": "$createdAt"}, group["lastMessage"])

	assert.Equal(t, bson.M{"$sort": bson.M{"lastMessage": -1}}, pipeline[4])
	assert.Equal(t, bson.M{"$limit": 50}, pipeline[5])
}
