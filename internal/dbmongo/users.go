package dbmongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tradeforce/internal/common"
	"tradeforce/internal/models"
)

// userDoc is the part of a marketplace user document the chat service reads.
type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserName   string             `bson:"userName"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	ProfilePic string             `bson:"profilePic"`
	IsOnline   bool               `bson:"isOnline"`
	SocketID   string             `bson:"socketId"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:         d.ID.Hex(),
		UserName:   d.UserName,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		ProfilePic: d.ProfilePic,
		IsOnline:   d.IsOnline,
		SocketID:   d.SocketID,
	}
}

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(mc *MongoClient) *UserStore {
	return &UserStore{coll: mc.Database.Collection(usersCollection)}
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID("user", id)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *UserStore) SetPresence(ctx context.Context, id, socketID string, online bool) error {
	oid, err := objectID("user", id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"socketId": socketID, "isOnline": online}},
	)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.NotFoundf("user %s not found", id)
	}
	return nil
}

func (s *UserStore) ClearPresenceIf(ctx context.Context, id, socketID string) (bool, error) {
	oid, err := objectID("user", id)
	if err != nil {
		return false, err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "socketId": socketID},
		bson.M{"$set": bson.M{"socketId": "", "isOnline": false}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to clear presence: %w", err)
	}
	return res.MatchedCount > 0, nil
}
