package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthmate-org/healthmate-api/schema"
)

const defaultAnalysesLimit = 20

// SymptomUseCase generates and stores symptom analyses
type SymptomUseCase struct {
	logger     *logrus.Logger
	repo       SymptomRepository
	generative GenerativeService
}

func NewSymptomUseCase(logger *logrus.Logger, repo SymptomRepository, generative GenerativeService) *SymptomUseCase {
	return &SymptomUseCase{
		logger:     logger,
		repo:       repo,
		generative: generative,
	}
}

// Analyze sends the symptom list to the generative service and stores the
// resulting analysis
func (uc *SymptomUseCase) Analyze(ctx context.Context, traceID string, userID string, symptoms []string, additionalInfo string, severity schema.Severity) (*schema.SymptomAnalysis, error) {
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("%w: symptoms list is required", ErrInvalidInput)
	}

	prompt := BuildSymptomPrompt(symptoms)
	analysis, err := uc.generative.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Printf("{%s} generative service failed: %v", traceID, err)
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}

	now := time.Now().UTC()
	record := &schema.SymptomAnalysis{
		UserID:         userID,
		Symptoms:       symptoms,
		AdditionalInfo: additionalInfo,
		Severity:       severity,
		Analysis:       analysis,
		Timestamp:      now,
		CreatedAt:      now,
	}
	if err := uc.repo.InsertAnalysis(ctx, traceID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History lists past analyses, newest first
func (uc *SymptomUseCase) History(ctx context.Context, traceID string, userID string, limit int64) ([]schema.SymptomAnalysis, error) {
	if limit <= 0 {
		limit = defaultAnalysesLimit
	}
	return uc.repo.GetAnalyses(ctx, traceID, userID, limit)
}
