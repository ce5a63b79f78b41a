// internal/models/fee_entry.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type FeeKind string

const (
	FeeRegistration FeeKind = "registration"
	FeeProject      FeeKind = "project"
	FeeProposal     FeeKind = "proposal"
)

// FeeEntry records a collected fee. Fees are kept, never redistributed.
type FeeEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Payer     string    `gorm:"type:varchar(42);index;not null" json:"payer"`
	Kind      FeeKind   `gorm:"type:varchar(20);not null" json:"kind"`
	Amount    uint64    `gorm:"not null" json:"amount"`
	Reference string    `gorm:"type:varchar(64)" json:"reference"` // project id or registered address
	CreatedAt time.Time `json:"created_at"`
}
