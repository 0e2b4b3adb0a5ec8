package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/observability"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/getsentry/sentry-go"
)

// UpstreamSuggestion is the remediation hint returned with
// ErrUpstreamUnavailable.
const UpstreamSuggestion = "Please start the prediction service and check that PREDICTION_API_URL points at it."

// PredictionService forwards feature maps to the external scoring service and
// records the outcome as a test report for authenticated callers.
type PredictionService struct {
	apiURL  string
	client  *http.Client
	reports *ReportService
	metrics *observability.Metrics
}

func NewPredictionService(cfg *config.Config, reports *ReportService, metrics *observability.Metrics) *PredictionService {
	return &PredictionService{
		apiURL:  strings.TrimRight(cfg.PredictionAPIURL, "/"),
		client:  &http.Client{Timeout: cfg.PredictionTimeout},
		reports: reports,
		metrics: metrics,
	}
}

// Predict sends payload unchanged to <api>/predict/<disease> and returns the
// decoded answer. With a caller, a report is stored and the response gains a
// "message" field once the report is saved; failing to store it never fails
// the prediction.
func (s *PredictionService) Predict(ctx context.Context, disease models.DiseaseType, payload []byte, caller *principal.Identity) (map[string]any, error) {
	result, err := s.forward(ctx, disease, payload)
	if err != nil {
		s.metrics.RecordPrediction(disease, observability.OutcomeUpstreamError)
		return nil, err
	}

	prediction, probability, ok := readOutcome(result)
	if ok {
		outcome := observability.OutcomeNegative
		if prediction == 1 {
			outcome = observability.OutcomePositive
		}
		s.metrics.RecordPrediction(disease, outcome)
	}

	if caller == nil || !ok {
		return result, nil
	}

	message := BuildMessage(disease, prediction, probability)
	_, err = s.reports.Save(ctx, caller.UserID, NewReport{
		Disease:     disease,
		Result:      prediction,
		Probability: probability,
		InputData:   string(payload),
		Message:     message,
	})
	if err != nil {
		slog.Error("failed to save test report",
			"user_id", caller.UserID.String(),
			"action", "save_prediction",
			"disease", disease.Slug(),
			"error", err,
		)
		s.metrics.RecordPersistFailure(disease)
		sentry.CaptureException(fmt.Errorf("save %s report: %w", disease.Slug(), err))
		return result, nil
	}

	result["message"] = message
	return result, nil
}

func (s *PredictionService) forward(ctx context.Context, disease models.DiseaseType, payload []byte) (map[string]any, error) {
	url := s.apiURL + "/predict/" + disease.Slug()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.ObserveUpstream(disease, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var result map[string]any
	if err := dec.Decode(&result); err != nil || result == nil {
		return nil, fmt.Errorf("%w: invalid response body", ErrUpstreamUnavailable)
	}
	return result, nil
}

// readOutcome extracts the binary prediction and the optional probability.
// Anything other than exactly 0 or 1 is not an outcome.
func readOutcome(result map[string]any) (int, *float64, bool) {
	raw, ok := result["prediction"]
	if !ok {
		return 0, nil, false
	}
	n, ok := raw.(json.Number)
	if !ok {
		slog.Warn("prediction service returned a non-numeric prediction", "value", raw)
		return 0, nil, false
	}
	var prediction int
	switch f, err := n.Float64(); {
	case err == nil && f == 0:
		prediction = 0
	case err == nil && f == 1:
		prediction = 1
	default:
		slog.Warn("prediction service returned a non-binary prediction", "value", n.String())
		return 0, nil, false
	}

	var probability *float64
	if p, ok := result["probability"].(json.Number); ok {
		if v, err := p.Float64(); err == nil {
			probability = &v
		}
	}
	return prediction, probability, true
}

// BuildMessage renders the human readable verdict. A positive result quotes
// the probability itself, a negative one quotes 1 - probability.
func BuildMessage(disease models.DiseaseType, prediction int, probability *float64) string {
	name := disease.Slug()
	if prediction == 1 {
		probText := ""
		if probability != nil {
			probText = fmt.Sprintf(" (%.1f%% probability)", *probability*100)
		}
		return "Based on the provided data, there are indicators suggesting a risk for " + name + probText +
			". Please consult with a healthcare professional for proper diagnosis and treatment."
	}

	probText := ""
	if probability != nil {
		probText = fmt.Sprintf(" (%.1f%% probability)", (1-*probability)*100)
	}
	return "Based on the provided data, the risk for " + name + " appears to be low" + probText +
		". However, regular health checkups are always recommended."
}
