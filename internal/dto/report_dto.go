package dto

import (
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
)

type SaveReportRequest struct {
	DiseaseType       string   `json:"diseaseType" validate:"required"`
	PredictionResult  *int     `json:"predictionResult" validate:"required,min=0,max=1"`
	Probability       *float64 `json:"probability" validate:"omitempty,gte=0,lte=1"`
	InputData         string   `json:"inputData"`
	PredictionMessage string   `json:"predictionMessage"`
}

type ReportResponse struct {
	ID                uuid.UUID `json:"id"`
	DiseaseType       string    `json:"diseaseType"`
	PredictionResult  int       `json:"predictionResult"`
	Probability       *float64  `json:"probability"`
	InputData         string    `json:"inputData"`
	PredictionMessage string    `json:"predictionMessage"`
	CreatedAt         time.Time `json:"createdAt"`
	UserName          string    `json:"userName"`
	UserEmail         string    `json:"userEmail"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func NewReportResponse(r *models.TestReport) ReportResponse {
	return ReportResponse{
		ID:                r.ID,
		DiseaseType:       string(r.DiseaseType),
		PredictionResult:  r.PredictionResult,
		Probability:       r.Probability,
		InputData:         r.InputData,
		PredictionMessage: r.PredictionMessage,
		CreatedAt:         r.CreatedAt,
		UserName:          r.User.FullName,
		UserEmail:         r.User.Email,
	}
}

func NewReportResponses(reports []models.TestReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportResponse(&reports[i]))
	}
	return out
}
