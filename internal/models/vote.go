package models

type VoteType string

const (
	VoteTypeUp   VoteType = "upvote"
	VoteTypeDown VoteType = "downvote"
)

// Valid reports whether t is one of the two accepted vote types.
func (t VoteType) Valid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// Vote holds a user's single vote on a project. The composite unique index
// keeps at most one row per (project_id, user_id) pair; writes go through
// an ON CONFLICT upsert so concurrent votes cannot duplicate.
type Vote struct {
	ID        uint64   `gorm:"primarykey" json:"id"`
	ProjectID uint64   `gorm:"not null;uniqueIndex:idx_votes_project_user" json:"project_id"`
	UserID    uint64   `gorm:"not null;uniqueIndex:idx_votes_project_user" json:"user_id"`
	VoteType  VoteType `gorm:"type:varchar(20);not null" json:"vote_type"`
}
