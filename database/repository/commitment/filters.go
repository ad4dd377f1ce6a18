package commitmentRepo

import (
	"skischool/models"

	"go.mongodb.org/mongo-driver/bson"
)

// subjectField returns the document field holding the subject's id.
func subjectField(kind models.CommitmentKind, role models.Role) string {
	if role == models.RoleClient {
		if kind == models.KindCollective {
			return "client_ids"
		}
		return "client_id"
	}
	return "monitor_id"
}

// privateFilter matches lesson lines of a subject dated inside the window.
func privateFilter(subject models.Subject, schoolID string, window models.TimeWindow) bson.M {
	filter := bson.M{
		"date":    bson.M{"$gte": window.StartDate(), "$lte": window.EndDate()},
		"deleted": bson.M{"$ne": true},
	}
	filter[subjectField(models.KindPrivate, subject.Role)] = subject.ID
	if schoolID != "" {
		filter["school_id"] = schoolID
	}
	return filter
}

// collectiveFilter matches subgroup sessions of a subject dated inside the window.
// client_ids is an array, so equality matches membership.
func collectiveFilter(subject models.Subject, schoolID string, window models.TimeWindow) bson.M {
	filter := bson.M{
		"date": bson.M{"$gte": window.StartDate(), "$lte": window.EndDate()},
	}
	filter[subjectField(models.KindCollective, subject.Role)] = subject.ID
	if schoolID != "" {
		filter["school_id"] = schoolID
	}
	return filter
}

// nwdFilter matches blocks whose [start_date, end_date] intersects the window.
// A block without end_date covers its start day only.
func nwdFilter(monitorID, schoolID string, window models.TimeWindow) bson.M {
	from, to := window.StartDate(), window.EndDate()
	filter := bson.M{
		"monitor_id": monitorID,
		"start_date": bson.M{"$lte": to},
		"$or": bson.A{
			bson.M{"end_date": bson.M{"$gte": from}},
			bson.M{"end_date": bson.M{"$in": bson.A{"", nil}}, "start_date": bson.M{"$gte": from}},
		},
	}
	if schoolID != "" {
		filter["school_id"] = schoolID
	}
	return filter
}

// ownerFilter selects the documents making up one commitment. A subgroup
// owns every one of its sessions.
func ownerFilter(kind models.CommitmentKind, entityID string) bson.M {
	if kind == models.KindCollective {
		return bson.M{"subgroup_id": entityID}
	}
	return bson.M{"id": entityID}
}
