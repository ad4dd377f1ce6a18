// File: database/repository/commitment/interface.go
package commitmentRepo

import (
	"context"

	"skischool/database"
	"skischool/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommitmentRepository is the data-access boundary of the schedule engine.
// An empty schoolID means "every school".
type CommitmentRepository interface {
	FetchPrivateBookings(ctx context.Context, subject models.Subject, schoolID string, window models.TimeWindow) ([]models.PrivateBooking, error)
	FetchCollectiveSessions(ctx context.Context, subject models.Subject, schoolID string, window models.TimeWindow) ([]models.CollectiveSession, error)
	FetchNwdBlocks(ctx context.Context, monitorID, schoolID string, window models.TimeWindow) ([]models.NwdBlock, error)

	FetchPrivateBookingByID(ctx context.Context, id string) (*models.PrivateBooking, error)
	FetchSubgroupSessions(ctx context.Context, subgroupID string) ([]models.CollectiveSession, error)
	FetchNwdBlockByID(ctx context.Context, id string) (*models.NwdBlock, error)

	PersistAssign(ctx context.Context, kind models.CommitmentKind, entityID, monitorID string) error
	PersistUnassign(ctx context.Context, kind models.CommitmentKind, entityID string) error
	PersistNwdReplace(ctx context.Context, originalID string, replacements []models.NwdBlock) error
}

// MongoCommitmentRepo implements CommitmentRepository using MongoDB.
type MongoCommitmentRepo struct {
	privateColl    *mongo.Collection
	collectiveColl *mongo.Collection
	nwdColl        *mongo.Collection
}

// NewMongoCommitmentRepo constructs a new MongoDB CommitmentRepository.
func NewMongoCommitmentRepo() *MongoCommitmentRepo {
	db := database.Database()
	return &MongoCommitmentRepo{
		privateColl:    db.Collection("private_bookings"),
		collectiveColl: db.Collection("collective_sessions"),
		nwdColl:        db.Collection("nwd_blocks"),
	}
}
