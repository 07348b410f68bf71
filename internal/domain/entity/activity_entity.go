package entity

// ActivityStatus is an opaque lifecycle label. Nothing transitions it
// automatically; any writer may set any value.
type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "active"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityActive, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

// Activity is a scheduled group event.
//
// CreatorID is a soft reference: the creator may have been deleted, in which
// case lookups yield no user rather than an error. NumParticipants is an
// advisory capacity and is never checked against actual joins.
type Activity struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Location        string         `json:"location"`
	Duration        int            `json:"duration"`
	NumParticipants int            `json:"numParticipants"`
	Date            string         `json:"date"`
	Hour            string         `json:"hour"`
	Status          ActivityStatus `json:"status"`
	CreatorID       string         `json:"creatorId"`
	CreatedAt       int64          `json:"createdAt"`
	Image           string         `json:"image,omitempty"`
}
