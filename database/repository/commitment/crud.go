// File: database/repository/commitment/crud.go
package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"skischool/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoCommitmentRepo) collectionFor(kind models.CommitmentKind) (*mongo.Collection, error) {
	switch kind {
	case models.KindPrivate:
		return r.privateColl, nil
	case models.KindCollective:
		return r.collectiveColl, nil
	case models.KindNWD:
		return r.nwdColl, nil
	}
	return nil, fmt.Errorf("unknown commitment kind %q", kind)
}

func (r *MongoCommitmentRepo) PersistAssign(ctx context.Context, kind models.CommitmentKind, entityID, monitorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll, err := r.collectionFor(kind)
	if err != nil {
		return err
	}
	res, err := coll.UpdateMany(ctx, ownerFilter(kind, entityID), bson.M{"$set": bson.M{"monitor_id": monitorID}})
	if err != nil {
		return fmt.Errorf("failed to assign monitor to %s %s: %w", kind, entityID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PersistUnassign clears monitor_id. Last writer wins; there is no version check.
func (r *MongoCommitmentRepo) PersistUnassign(ctx context.Context, kind models.CommitmentKind, entityID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll, err := r.collectionFor(kind)
	if err != nil {
		return err
	}
	if _, err := coll.UpdateMany(ctx, ownerFilter(kind, entityID), bson.M{"$set": bson.M{"monitor_id": nil}}); err != nil {
		return fmt.Errorf("failed to unassign monitor from %s %s: %w", kind, entityID, err)
	}
	return nil
}

// PersistNwdReplace deletes the original block and inserts its replacements
// in a single transaction.
func (r *MongoCommitmentRepo) PersistNwdReplace(ctx context.Context, originalID string, replacements []models.NwdBlock) error {
	docs := make([]interface{}, len(replacements))
	now := time.Now()
	for i, block := range replacements {
		if block.ID == "" {
			block.ID = uuid.New().String()
		}
		if block.CreatedAt.IsZero() {
			block.CreatedAt = now
		}
		docs[i] = block
	}

	client := r.nwdColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.nwdColl.DeleteOne(sc, bson.M{"id": originalID})
		if err != nil {
			return fmt.Errorf("delete nwd block failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("nwd block %s not found: %w", originalID, mongo.ErrNoDocuments)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.nwdColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert replacement blocks failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("nwd replace transaction failed: %w", err)
	}
	return nil
}
