// internal/models/profile.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleEmployer   Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleFreelancer || r == RoleEmployer
}

// Field and collection bounds enforced on every write.
const (
	NameMaxLen      = 50
	PhotoMaxLen     = 256
	EducationMaxLen = 100
	TitleMaxLen     = 50
	PitchMaxLen     = 256

	SkillsMinCount      = 1
	SkillsMaxCount      = 5
	ExperiencesMaxCount = 5
	PortfolioMaxCount   = 5
)

type Experience struct {
	Company      string `json:"company"`
	DurationDays uint64 `json:"duration_days"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`
}

type PortfolioItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Year        uint32 `json:"year"`
	Result      string `json:"result"`
}

// Profile is keyed by the owner's wallet address (lowercase 0x-hex).
// Role never changes after registration.
type Profile struct {
	Address   string                      `gorm:"type:varchar(42);primaryKey" json:"address"`
	Name      string                      `gorm:"type:varchar(50);not null" json:"name"`
	Photo     string                      `gorm:"type:varchar(256);not null" json:"photo"`
	Role      Role                        `gorm:"type:varchar(20);not null" json:"role"`
	Skills    datatypes.JSONSlice[string] `json:"skills"`
	Education string                      `gorm:"type:varchar(100);not null" json:"education"`

	// Owned sub-records, capped at 5 each.
	Experiences []Experience    `gorm:"serializer:json" json:"experiences"`
	Portfolio   []PortfolioItem `gorm:"serializer:json" json:"portfolio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
