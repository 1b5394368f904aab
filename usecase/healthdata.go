package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate-org/healthmate-api/schema"
)

const (
	defaultListLimit = 100
	defaultListDays  = 30
)

var dashboardFromStoreTimer = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:      "dashboard_from_store_time",
	Help:      "A histogram for dashboard summary fetch time (ms)",
	Buckets:   prometheus.LinearBuckets(5, 5, 100),
	Subsystem: "api",
	Namespace: "healthmate",
})

type (
	// HealthDataUseCase record CRUD plus the dashboard summary
	HealthDataUseCase struct {
		logger *logrus.Logger
		repo   HealthDataRepository
	}

	// BloodPressureSummary latest reading with its band
	BloodPressureSummary struct {
		Reading  schema.BloodPressureReading `json:"reading"`
		Category Category                    `json:"category"`
	}
	// BloodSugarSummary latest reading with its band
	BloodSugarSummary struct {
		Reading  schema.BloodSugarReading `json:"reading"`
		Category Category                 `json:"category"`
	}
	// WeightSummary latest reading with the recent trend
	WeightSummary struct {
		Reading schema.WeightReading `json:"reading"`
		Trend   WeightTrendResult    `json:"trend"`
	}
	// DashboardSummary returned by the summary route
	DashboardSummary struct {
		BloodPressure *BloodPressureSummary `json:"bloodPressure,omitempty"`
		BloodSugar    *BloodSugarSummary    `json:"bloodSugar,omitempty"`
		Weight        *WeightSummary        `json:"weight,omitempty"`
		Adherence     Adherence             `json:"medicationAdherence"`
	}
)

func NewHealthDataUseCase(logger *logrus.Logger, repo HealthDataRepository) *HealthDataUseCase {
	return &HealthDataUseCase{
		logger: logger,
		repo:   repo,
	}
}

// CreateRecord decodes and stores one record of the given type. The record
// type is a closed enum, the switch below is exhaustive over it. CreatedAt is
// server assigned, a missing measurement timestamp defaults to now.
func (uc *HealthDataUseCase) CreateRecord(ctx context.Context, traceID string, userID string, recordType schema.RecordType, data json.RawMessage) (interface{}, error) {
	now := time.Now().UTC()
	switch recordType {
	case schema.RecordTypeBloodPressure:
		var reading schema.BloodPressureReading
		if err := json.Unmarshal(data, &reading); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		reading.UserID = userID
		reading.CreatedAt = now
		if reading.Timestamp.IsZero() {
			reading.Timestamp = now
		}
		return &reading, uc.repo.InsertBloodPressure(ctx, traceID, &reading)

	case schema.RecordTypeBloodSugar:
		var reading schema.BloodSugarReading
		if err := json.Unmarshal(data, &reading); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		reading.UserID = userID
		reading.CreatedAt = now
		if reading.Timestamp.IsZero() {
			reading.Timestamp = now
		}
		return &reading, uc.repo.InsertBloodSugar(ctx, traceID, &reading)

	case schema.RecordTypeWeight:
		var reading schema.WeightReading
		if err := json.Unmarshal(data, &reading); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		reading.UserID = userID
		reading.CreatedAt = now
		if reading.Timestamp.IsZero() {
			reading.Timestamp = now
		}
		return &reading, uc.repo.InsertWeight(ctx, traceID, &reading)

	case schema.RecordTypeMedication:
		var medication schema.Medication
		if err := json.Unmarshal(data, &medication); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		medication.UserID = userID
		medication.CreatedAt = now
		if medication.Reminders == nil {
			medication.Reminders = []schema.Reminder{}
		}
		return &medication, uc.repo.InsertMedication(ctx, traceID, &medication)

	case schema.RecordTypeMedicationLog:
		var log schema.MedicationLog
		if err := json.Unmarshal(data, &log); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		log.UserID = userID
		log.CreatedAt = now
		if log.Timestamp.IsZero() {
			log.Timestamp = now
		}
		return &log, uc.repo.InsertMedicationLog(ctx, traceID, &log)
	}
	return nil, fmt.Errorf("%w: record type %q", ErrInvalidInput, recordType)
}

// GetRecords lists records of one type (or all of them) for a user, newest
// first. Readings and logs are windowed to the last days days, medications
// are always returned in full.
func (uc *HealthDataUseCase) GetRecords(ctx context.Context, traceID string, userID string, typeParam string, days int, limit int64) (map[string]interface{}, error) {
	if days <= 0 {
		days = defaultListDays
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	params := Params{
		Start: time.Now().UTC().AddDate(0, 0, -days),
		Limit: limit,
	}

	switch typeParam {
	case "blood-pressure":
		readings, err := uc.repo.GetBloodPressure(ctx, traceID, userID, params)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"bloodPressure": readings}, nil
	case "blood-sugar":
		readings, err := uc.repo.GetBloodSugar(ctx, traceID, userID, params)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"bloodSugar": readings}, nil
	case "weight":
		readings, err := uc.repo.GetWeight(ctx, traceID, userID, params)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"weight": readings}, nil
	case "medications":
		medications, err := uc.repo.GetMedications(ctx, traceID, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"medications": medications}, nil
	case "medication-logs":
		logs, err := uc.repo.GetMedicationLogs(ctx, traceID, userID, params)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"medicationLogs": logs}, nil
	case "all":
		return uc.getAllRecords(ctx, traceID, userID, params)
	}
	return nil, fmt.Errorf("%w: list type %q", ErrInvalidInput, typeParam)
}

func (uc *HealthDataUseCase) getAllRecords(ctx context.Context, traceID string, userID string, params Params) (map[string]interface{}, error) {
	bloodPressure, err := uc.repo.GetBloodPressure(ctx, traceID, userID, params)
	if err != nil {
		return nil, err
	}
	bloodSugar, err := uc.repo.GetBloodSugar(ctx, traceID, userID, params)
	if err != nil {
		return nil, err
	}
	weight, err := uc.repo.GetWeight(ctx, traceID, userID, params)
	if err != nil {
		return nil, err
	}
	medications, err := uc.repo.GetMedications(ctx, traceID, userID)
	if err != nil {
		return nil, err
	}
	logs, err := uc.repo.GetMedicationLogs(ctx, traceID, userID, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"bloodPressure":  bloodPressure,
		"bloodSugar":     bloodSugar,
		"weight":         weight,
		"medications":    medications,
		"medicationLogs": logs,
	}, nil
}

// BuildExport collects every stored record of a user without a time window,
// for the export route
func (uc *HealthDataUseCase) BuildExport(ctx context.Context, traceID string, userID string) (map[string]interface{}, error) {
	return uc.getAllRecords(ctx, traceID, userID, Params{})
}

// DeleteRecord removes one record by id and owner. Medication logs are not
// deletable through the api, same as the record form never offered it.
func (uc *HealthDataUseCase) DeleteRecord(ctx context.Context, traceID string, userID string, recordType schema.RecordType, recordID string) error {
	if recordType == schema.RecordTypeMedicationLog {
		return fmt.Errorf("%w: record type %q is not deletable", ErrInvalidInput, recordType)
	}
	if !primitive.IsValidObjectID(recordID) {
		return fmt.Errorf("%w: record id %q", ErrInvalidInput, recordID)
	}
	deleted, err := uc.repo.DeleteRecord(ctx, traceID, recordType, userID, recordID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDashboard assembles the dashboard summary: latest readings with their
// bands, the weight trend over the two most recent readings and today's
// medication adherence.
func (uc *HealthDataUseCase) GetDashboard(ctx context.Context, traceID string, userID string) (*DashboardSummary, error) {
	start := time.Now()
	defer func() {
		dashboardFromStoreTimer.Observe(float64(time.Since(start).Milliseconds()))
	}()

	now := time.Now().UTC()
	window := Params{Start: now.AddDate(0, 0, -defaultListDays), Limit: defaultListLimit}

	bloodPressure, err := uc.repo.GetBloodPressure(ctx, traceID, userID, Params{Limit: 1})
	if err != nil {
		return nil, err
	}
	bloodSugar, err := uc.repo.GetBloodSugar(ctx, traceID, userID, Params{Limit: 1})
	if err != nil {
		return nil, err
	}
	weight, err := uc.repo.GetWeight(ctx, traceID, userID, Params{Limit: 2})
	if err != nil {
		return nil, err
	}
	medications, err := uc.repo.GetMedications(ctx, traceID, userID)
	if err != nil {
		return nil, err
	}
	logs, err := uc.repo.GetMedicationLogs(ctx, traceID, userID, window)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		Adherence: MedicationAdherence(medications, logs, now),
	}
	if len(bloodPressure) > 0 {
		summary.BloodPressure = &BloodPressureSummary{
			Reading:  bloodPressure[0],
			Category: ClassifyBloodPressure(bloodPressure[0].Systolic, bloodPressure[0].Diastolic),
		}
	}
	if len(bloodSugar) > 0 {
		summary.BloodSugar = &BloodSugarSummary{
			Reading:  bloodSugar[0],
			Category: ClassifyBloodSugar(bloodSugar[0].Value, bloodSugar[0].Subtype),
		}
	}
	if len(weight) > 0 {
		summary.Weight = &WeightSummary{
			Reading: weight[0],
			Trend:   WeightTrend(weight),
		}
	}
	return summary, nil
}
