// File: database/repository/commitment/queries.go
package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"skischool/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoCommitmentRepo) FetchPrivateBookings(ctx context.Context, subject models.Subject, schoolID string, window models.TimeWindow) ([]models.PrivateBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.privateColl.Find(ctx, privateFilter(subject, schoolID, window), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch private bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.PrivateBooking
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding private bookings: %w", err)
	}
	return rows, nil
}

func (r *MongoCommitmentRepo) FetchCollectiveSessions(ctx context.Context, subject models.Subject, schoolID string, window models.TimeWindow) ([]models.CollectiveSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.collectiveColl.Find(ctx, collectiveFilter(subject, schoolID, window), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collective sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CollectiveSession
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding collective sessions: %w", err)
	}
	return rows, nil
}

func (r *MongoCommitmentRepo) FetchNwdBlocks(ctx context.Context, monitorID, schoolID string, window models.TimeWindow) ([]models.NwdBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.nwdColl.Find(ctx, nwdFilter(monitorID, schoolID, window))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nwd blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.NwdBlock
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding nwd blocks: %w", err)
	}
	return rows, nil
}

func (r *MongoCommitmentRepo) FetchPrivateBookingByID(ctx context.Context, id string) (*models.PrivateBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var row models.PrivateBooking
	if err := r.privateColl.FindOne(ctx, bson.M{"id": id}).Decode(&row); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("private booking %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &row, nil
}

func (r *MongoCommitmentRepo) FetchSubgroupSessions(ctx context.Context, subgroupID string) ([]models.CollectiveSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collectiveColl.Find(ctx, bson.M{"subgroup_id": subgroupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subgroup sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CollectiveSession
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding subgroup sessions: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("subgroup %s has no sessions: %w", subgroupID, mongo.ErrNoDocuments)
	}
	return rows, nil
}

func (r *MongoCommitmentRepo) FetchNwdBlockByID(ctx context.Context, id string) (*models.NwdBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var row models.NwdBlock
	if err := r.nwdColl.FindOne(ctx, bson.M{"id": id}).Decode(&row); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("nwd block %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &row, nil
}
