package models

import (
	"time"

	"github.com/google/uuid"
)

// TestReport is one persisted prediction outcome. Reports are written once and
// never updated; they go away only with their owning user.
type TestReport struct {
	ID                uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID   `gorm:"type:uuid;not null;index:idx_test_reports_user_created,priority:1" json:"user_id"`
	DiseaseType       DiseaseType `gorm:"size:20;not null;index" json:"disease_type"`
	PredictionResult  int         `gorm:"not null" json:"prediction_result"`
	Probability       *float64    `json:"probability,omitempty"`
	InputData         string      `gorm:"type:text" json:"input_data"`
	PredictionMessage string      `gorm:"type:text" json:"prediction_message"`
	CreatedAt         time.Time   `gorm:"index:idx_test_reports_user_created,priority:2,sort:desc" json:"created_at"`
	User              User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TestReport) TableName() string {
	return "test_reports"
}
