package schedule

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"skischool/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var testHours = Hours{Opening: 9 * time.Hour, Closing: 17 * time.Hour}

// ts parses "2006-01-02 15:04[:05]" in UTC.
func ts(t *testing.T, s string) time.Time {
	t.Helper()
	layout := "2006-01-02 15:04"
	if len(s) > len(layout) {
		layout = "2006-01-02 15:04:05"
	}
	v, err := time.ParseInLocation(layout, s, time.UTC)
	require.NoError(t, err)
	return v
}

func window(t *testing.T, from, to string) Interval {
	t.Helper()
	iv, err := Window(ts(t, from), ts(t, to))
	require.NoError(t, err)
	return iv
}

func owned(t *testing.T, from, to string, kind models.CommitmentKind, owner string) Interval {
	t.Helper()
	iv, err := NewInterval(ts(t, from), ts(t, to), kind, owner)
	require.NoError(t, err)
	return iv
}

func monitor(id string) models.Subject {
	return models.Subject{ID: id, Role: models.RoleMonitor}
}

func client(id string) models.Subject {
	return models.Subject{ID: id, Role: models.RoleClient}
}

type assignCall struct {
	kind      models.CommitmentKind
	entityID  string
	monitorID string
}

// fakeRepo is an in-memory CommitmentRepository. Writes update the stored rows
// so a follow-up read sees them.
type fakeRepo struct {
	mu          sync.Mutex
	privates    []models.PrivateBooking
	collectives []models.CollectiveSession
	blocks      []models.NwdBlock

	fetchErr error
	nwdCalls int

	assigned   []assignCall
	unassigned []models.CommitmentRef
	replaced   map[string][]models.NwdBlock
}

func inDates(date string, w models.TimeWindow) bool {
	return date >= w.StartDate() && date <= w.EndDate()
}

func (f *fakeRepo) FetchPrivateBookings(_ context.Context, subject models.Subject, schoolID string, w models.TimeWindow) ([]models.PrivateBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.PrivateBooking
	for _, b := range f.privates {
		who := b.MonitorID
		if subject.Role == models.RoleClient {
			who = b.ClientID
		}
		if who != subject.ID || b.Deleted || !inDates(b.Date, w) || (schoolID != "" && b.SchoolID != schoolID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) FetchCollectiveSessions(_ context.Context, subject models.Subject, schoolID string, w models.TimeWindow) ([]models.CollectiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CollectiveSession
	for _, s := range f.collectives {
		match := s.MonitorID == subject.ID
		if subject.Role == models.RoleClient {
			match = slices.Contains(s.ClientIDs, subject.ID)
		}
		if !match || !inDates(s.Date, w) || (schoolID != "" && s.SchoolID != schoolID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) FetchNwdBlocks(_ context.Context, monitorID, schoolID string, w models.TimeWindow) ([]models.NwdBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nwdCalls++
	var out []models.NwdBlock
	for _, b := range f.blocks {
		end := b.EndDate
		if end == "" {
			end = b.StartDate
		}
		if b.MonitorID != monitorID || b.StartDate > w.EndDate() || end < w.StartDate() {
			continue
		}
		if schoolID != "" && b.SchoolID != schoolID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) FetchPrivateBookingByID(_ context.Context, id string) (*models.PrivateBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.privates {
		if b.ID == id {
			row := b
			return &row, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRepo) FetchSubgroupSessions(_ context.Context, subgroupID string) ([]models.CollectiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CollectiveSession
	for _, s := range f.collectives {
		if s.SubgroupID == subgroupID {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return out, nil
}

func (f *fakeRepo) FetchNwdBlockByID(_ context.Context, id string) (*models.NwdBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blocks {
		if b.ID == id {
			row := b
			return &row, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRepo) setMonitor(kind models.CommitmentKind, entityID, monitorID string) bool {
	found := false
	switch kind {
	case models.KindPrivate:
		for i := range f.privates {
			if f.privates[i].ID == entityID {
				f.privates[i].MonitorID = monitorID
				found = true
			}
		}
	case models.KindCollective:
		for i := range f.collectives {
			if f.collectives[i].SubgroupID == entityID {
				f.collectives[i].MonitorID = monitorID
				found = true
			}
		}
	case models.KindNWD:
		for i := range f.blocks {
			if f.blocks[i].ID == entityID {
				f.blocks[i].MonitorID = monitorID
				found = true
			}
		}
	}
	return found
}

func (f *fakeRepo) PersistAssign(_ context.Context, kind models.CommitmentKind, entityID, monitorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.setMonitor(kind, entityID, monitorID) {
		return mongo.ErrNoDocuments
	}
	f.assigned = append(f.assigned, assignCall{kind: kind, entityID: entityID, monitorID: monitorID})
	return nil
}

func (f *fakeRepo) PersistUnassign(_ context.Context, kind models.CommitmentKind, entityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setMonitor(kind, entityID, "")
	f.unassigned = append(f.unassigned, models.CommitmentRef{Kind: kind, OwnerID: entityID})
	return nil
}

func (f *fakeRepo) PersistNwdReplace(_ context.Context, originalID string, replacements []models.NwdBlock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaced == nil {
		f.replaced = make(map[string][]models.NwdBlock)
	}
	f.replaced[originalID] = replacements
	return nil
}

func newCalculator(repo *fakeRepo) *Calculator {
	return &Calculator{Repo: repo, Hours: testHours, Logger: zap.NewNop()}
}
