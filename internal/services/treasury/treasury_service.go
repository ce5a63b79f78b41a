// internal/services/treasury/treasury_service.go
package treasury

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lancechain/registry_be/internal/models"
)

// Service records collected fees. Fees are accepted with state-changing
// calls and kept; nothing here pays out or refunds.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// RecordFee writes a ledger row for an accepted fee.
func (s *Service) RecordFee(payer string, kind models.FeeKind, amount uint64, reference string) error {
	if amount == 0 {
		return errors.New("fee amount must be greater than zero")
	}

	entry := models.FeeEntry{
		ID:        uuid.New(),
		Payer:     payer,
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
		CreatedAt: time.Now(),
	}
	return s.DB.Create(&entry).Error
}

// CollectedTotal sums every fee taken so far, optionally for one kind.
func (s *Service) CollectedTotal(kind models.FeeKind) (uint64, error) {
	var total *uint64
	q := s.DB.Model(&models.FeeEntry{}).Select("SUM(amount)")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
