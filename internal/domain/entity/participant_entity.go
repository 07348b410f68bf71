package entity

// Participant is one user's membership in one activity. (UserID, ActivityID)
// is the identity; both halves are soft references.
type Participant struct {
	UserID     string `json:"userId"`
	ActivityID string `json:"activityId"`
	JoinedAt   int64  `json:"joinedAt"`
}
