package service

import (
	"database/sql"
	"strconv"

	"github.com/stvowns/portfolio-tracker/internal/database"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion() model.VersionInfo {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "unknown",
	}

	if v, err := database.SchemaVersion(s.db); err == nil {
		info.DbVersion = strconv.FormatInt(v, 10)
	}

	return info
}
