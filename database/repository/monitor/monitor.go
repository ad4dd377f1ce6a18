// File: database/repository/monitor/monitor.go
package monitorRepo

import (
	"context"
	"fmt"
	"time"

	"skischool/database"
	"skischool/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MonitorSearchCriteria narrows the candidate pool before the eligibility filter runs.
type MonitorSearchCriteria struct {
	SchoolID  string
	StationID string
	SportID   string
}

type MonitorRepository interface {
	SearchCandidates(ctx context.Context, criteria MonitorSearchCriteria) ([]models.MonitorCandidate, error)
	GetByID(ctx context.Context, id string) (*models.MonitorCandidate, error)
}

// MongoMonitorRepo implements MonitorRepository using MongoDB.
type MongoMonitorRepo struct {
	coll *mongo.Collection
}

func NewMongoMonitorRepo() *MongoMonitorRepo {
	return &MongoMonitorRepo{coll: database.Database().Collection("monitors")}
}

// candidatePipeline matches active monitors of a school and sorts them by name,
// which is the order the eligibility filter preserves.
func candidatePipeline(criteria MonitorSearchCriteria) mongo.Pipeline {
	match := bson.M{"active": true}
	if criteria.SchoolID != "" {
		match["school_id"] = criteria.SchoolID
	}
	if criteria.StationID != "" {
		match["station_id"] = criteria.StationID
	}
	if criteria.SportID != "" {
		// Monitors without sport-specific authorizations stay in the pool.
		match["$or"] = bson.A{
			bson.M{"authorized_degrees": bson.M{"$exists": false}},
			bson.M{"authorized_degrees": bson.A{}},
			bson.M{"authorized_degrees.sport_id": criteria.SportID},
		}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{
			{Key: "first_name", Value: 1},
			{Key: "last_name", Value: 1},
		}}},
	}
}

func (r *MongoMonitorRepo) SearchCandidates(ctx context.Context, criteria MonitorSearchCriteria) ([]models.MonitorCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, candidatePipeline(criteria))
	if err != nil {
		return nil, fmt.Errorf("aggregation query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var monitors []models.MonitorCandidate
	if err := cursor.All(ctx, &monitors); err != nil {
		return nil, fmt.Errorf("failed to decode monitors: %w", err)
	}
	return monitors, nil
}

func (r *MongoMonitorRepo) GetByID(ctx context.Context, id string) (*models.MonitorCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var monitor models.MonitorCandidate
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&monitor); err != nil {
		return nil, fmt.Errorf("error fetching monitor with id %s: %w", id, err)
	}
	return &monitor, nil
}

// EnsureIndexes creates the indexes used by SearchCandidates and GetByID.
func (r *MongoMonitorRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "school_id", Value: 1}, {Key: "active", Value: 1}, {Key: "first_name", Value: 1}},
			Options: options.Index().SetName("school_active_name_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create monitor indexes: %w", err)
	}
	return nil
}
