package dbmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the chat queries rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, mc *MongoClient) error {
	specs := map[string][]mongo.IndexModel{
		messagesCollection: {
			{Keys: bson.D{{Key: "fromUserId", Value: 1}, {Key: "toUserId", Value: 1}, {Key: "isUnread", Value: 1}}},
			{Keys: bson.D{{Key: "toUserId", Value: 1}, {Key: "date", Value: 1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "socketId", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
	}

	for coll, idx := range specs {
		if _, err := mc.Database.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
