// FILE: database/repository/commitment/indexes.go
package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the gateway queries.
func (r *MongoCommitmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}

	if _, err := r.privateColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique,
		{
			Keys:    bson.D{{Key: "monitor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("monitor_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("client_date_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create private booking indexes: %w", err)
	}

	if _, err := r.collectiveColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique,
		{
			Keys:    bson.D{{Key: "monitor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("monitor_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_ids", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("clients_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "subgroup_id", Value: 1}},
			Options: options.Index().SetName("subgroup_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create collective session indexes: %w", err)
	}

	if _, err := r.nwdColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique,
		{
			Keys:    bson.D{{Key: "monitor_id", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("monitor_range_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create nwd indexes: %w", err)
	}
	return nil
}
