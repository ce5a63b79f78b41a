// internal/models/project.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Proposal is owned by its project, created once, never mutated.
type Proposal struct {
	Freelancer   string `json:"freelancer"`
	Pitch        string `json:"pitch"`
	Amount       uint64 `json:"amount"`
	DurationDays uint64 `json:"duration_days"`
	SubmittedAt  int64  `json:"submitted_at"`
}

// Project ids are assigned sequentially at creation (0, 1, 2, ...),
// never reused or removed. Employer and required skills are immutable.
type Project struct {
	ID             uint64                      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Employer       string                      `gorm:"type:varchar(42);index;not null" json:"employer"`
	Title          string                      `gorm:"type:varchar(50);not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `json:"required_skills"`
	DurationDays   uint64                      `json:"duration_days"`
	Amount         uint64                      `json:"amount"`
	Open           bool                        `json:"open"`

	// Unix seconds; strictly greater than creation time, immutable.
	ProposalDeadline int64 `json:"proposal_deadline"`

	// Append-only, index = submission order.
	Proposals []Proposal `gorm:"serializer:json" json:"proposals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) ProposalCount() int {
	return len(p.Proposals)
}
