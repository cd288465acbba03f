package dbmongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tradeforce/internal/common"
)

// objectID parses a hex id. A malformed id cannot name any document, so it
// is reported as not found.
func objectID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NotFoundf("%s %s not found", kind, id)
	}
	return oid, nil
}
