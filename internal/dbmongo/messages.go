package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

type messageDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FromUserID string             `bson:"fromUserId"`
	ToUserID   string             `bson:"toUserId"`
	Content    string             `bson:"content"`
	Date       time.Time          `bson:"date"`
	IsUnread   bool               `bson:"isUnread"`
}

func (d *messageDoc) toModel() *models.Message {
	return &models.Message{
		ID:         d.ID.Hex(),
		FromUserID: d.FromUserID,
		ToUserID:   d.ToUserID,
		Content:    d.Content,
		Date:       d.Date.UTC(),
		IsUnread:   d.IsUnread,
	}
}

type MessageStore struct {
	coll *mongo.Collection
}

func NewMessageStore(mc *MongoClient) *MessageStore {
	return &MessageStore{coll: mc.Database.Collection(messagesCollection)}
}

func (s *MessageStore) Insert(ctx context.Context, msg *models.Message) error {
	doc := messageDoc{
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Content:    msg.Content,
		Date:       msg.Date,
		IsUnread:   msg.IsUnread,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid.Hex()
	}
	return nil
}

func (s *MessageStore) FindByID(ctx context.Context, id string) (*models.Message, error) {
	oid, err := objectID("message", id)
	if err != nil {
		return nil, err
	}

	var doc messageDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFoundf("message %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MessageStore) FindByParticipant(ctx context.Context, userID string) ([]*models.Message, error) {
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"fromUserId": userID},
		bson.M{"toUserId": userID},
	}})
}

func (s *MessageStore) FindConversation(ctx context.Context, a, b string) ([]*models.Message, error) {
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"fromUserId": a, "toUserId": b},
		bson.M{"fromUserId": b, "toUserId": a},
	}})
}

func (s *MessageStore) FindAll(ctx context.Context) ([]*models.Message, error) {
	return s.find(ctx, bson.M{})
}

func (s *MessageStore) CountUnread(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{
		"fromUserId": fromUserID,
		"toUserId":   toUserID,
		"isUnread":   true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

func (s *MessageStore) MarkConversationRead(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"fromUserId": fromUserID, "toUserId": toUserID, "isUnread": true},
		bson.M{"$set": bson.M{"isUnread": false}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, id string) error {
	oid, err := objectID("message", id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isUnread": false}})
	if err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.NotFoundf("message %s not found", id)
	}
	return nil
}

// find returns the matching messages oldest first.
func (s *MessageStore) find(ctx context.Context, filter bson.M) ([]*models.Message, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	out := make([]*models.Message, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}
