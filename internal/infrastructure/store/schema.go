package store

import (
	"strconv"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/internal/storage"
)

const (
	UsersCollection        = "users"
	ActivitiesCollection   = "activities"
	ParticipantsCollection = "participants"
)

// Index names. They match the JSON field they index.
const (
	IndexEmail      = "email"
	IndexCreatedAt  = "createdAt"
	IndexCreatorID  = "creatorId"
	IndexCategory   = "category"
	IndexStatus     = "status"
	IndexDate       = "date"
	IndexUserID     = "userId"
	IndexActivityID = "activityId"
)

var userDefinition = storage.Definition[entity.User]{
	Schema: storage.Schema{
		Collection: UsersCollection,
		Indexes: []storage.Index{
			{Name: IndexEmail, Unique: true},
			{Name: IndexCreatedAt},
		},
	},
	Key: func(u entity.User) string { return u.ID },
	IndexValues: func(u entity.User) map[string]string {
		return map[string]string{
			IndexEmail:     u.Email,
			IndexCreatedAt: strconv.FormatInt(u.CreatedAt, 10),
		}
	},
}

var activityDefinition = storage.Definition[entity.Activity]{
	Schema: storage.Schema{
		Collection: ActivitiesCollection,
		Indexes: []storage.Index{
			{Name: IndexCreatorID},
			{Name: IndexCategory},
			{Name: IndexStatus},
			{Name: IndexDate},
			{Name: IndexCreatedAt},
		},
	},
	Key: func(a entity.Activity) string { return a.ID },
	IndexValues: func(a entity.Activity) map[string]string {
		return map[string]string{
			IndexCreatorID: a.CreatorID,
			IndexCategory:  a.Category,
			IndexStatus:    string(a.Status),
			IndexDate:      a.Date,
			IndexCreatedAt: strconv.FormatInt(a.CreatedAt, 10),
		}
	},
}

var participantDefinition = storage.Definition[entity.Participant]{
	Schema: storage.Schema{
		Collection: ParticipantsCollection,
		Indexes: []storage.Index{
			{Name: IndexUserID},
			{Name: IndexActivityID},
		},
	},
	Key: func(p entity.Participant) string { return participantKey(p.UserID, p.ActivityID) },
	IndexValues: func(p entity.Participant) map[string]string {
		return map[string]string{
			IndexUserID:     p.UserID,
			IndexActivityID: p.ActivityID,
		}
	},
}

func participantKey(userID, activityID string) string {
	return storage.CompositeKey(userID, activityID)
}
