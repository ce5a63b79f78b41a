// internal/store/store.go
package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lancechain/registry_be/internal/models"
	"github.com/lancechain/registry_be/internal/registry"
)

// Store mirrors the registry core into the database: snapshots are upserted
// after each successful core mutation and loaded back at boot. The core
// stays the source of truth within a running process.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) AutoMigrate() error {
	return s.DB.AutoMigrate(&models.Profile{}, &models.Project{}, &models.FeeEntry{})
}

func (s *Store) SaveProfile(p models.Profile) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(&p).Error
}

func (s *Store) SaveProject(p models.Project) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&p).Error
}

// Load rebuilds the registry from persisted snapshots. Projects are read
// ordered by id so the append-only sequence comes back intact.
func (s *Store) Load(reg *registry.Registry) error {
	var profiles []models.Profile
	if err := s.DB.Find(&profiles).Error; err != nil {
		return err
	}
	var projects []models.Project
	if err := s.DB.Order("id asc").Find(&projects).Error; err != nil {
		return err
	}
	reg.Restore(profiles, projects)
	return nil
}
