package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

type notificationDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	UserID  string             `bson:"userId"`
	Type    string             `bson:"type"`
	Content string             `bson:"content"`
	IsRead  bool               `bson:"isRead"`
	Date    time.Time          `bson:"date"`
}

type NotificationStore struct {
	coll *mongo.Collection
}

func NewNotificationStore(mc *MongoClient) *NotificationStore {
	return &NotificationStore{coll: mc.Database.Collection(notificationsCollection)}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	res, err := s.coll.InsertOne(ctx, notificationDoc{
		UserID:  n.UserID,
		Type:    n.Type.String(),
		Content: n.Content,
		IsRead:  n.IsRead,
		Date:    n.Date,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid.Hex()
	}
	return nil
}

func (s *NotificationStore) ByUserID(ctx context.Context, userID string) ([]*models.Notification, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	out := make([]*models.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, &models.Notification{
			ID:      d.ID.Hex(),
			UserID:  d.UserID,
			Type:    models.NotificationType(d.Type),
			Content: d.Content,
			IsRead:  d.IsRead,
			Date:    d.Date.UTC(),
		})
	}
	return out, nil
}

func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	oid, err := objectID("notification", id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.NotFoundf("notification %s not found", id)
	}
	return nil
}

func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return res.ModifiedCount, nil
}
