package infrastructure

import (
	"context"

	"github.com/healthmate-org/healthmate-api/schema"
	"github.com/healthmate-org/healthmate-api/usecase"
)

// MockHealthDataRepository use for unit tests
type MockHealthDataRepository struct {
	BloodPressure  []schema.BloodPressureReading
	BloodSugar     []schema.BloodSugarReading
	Weight         []schema.WeightReading
	Medications    []schema.Medication
	MedicationLogs []schema.MedicationLog

	DeletedCount int64
	Err          error

	InsertedBloodPressure  []*schema.BloodPressureReading
	InsertedBloodSugar     []*schema.BloodSugarReading
	InsertedWeight         []*schema.WeightReading
	InsertedMedications    []*schema.Medication
	InsertedMedicationLogs []*schema.MedicationLog
}

func NewMockHealthDataRepository() *MockHealthDataRepository {
	return &MockHealthDataRepository{}
}

func (m *MockHealthDataRepository) InsertBloodPressure(ctx context.Context, traceID string, reading *schema.BloodPressureReading) error {
	if m.Err != nil {
		return m.Err
	}
	m.InsertedBloodPressure = append(m.InsertedBloodPressure, reading)
	return nil
}

func (m *MockHealthDataRepository) InsertBloodSugar(ctx context.Context, traceID string, reading *schema.BloodSugarReading) error {
	if m.Err != nil {
		return m.Err
	}
	m.InsertedBloodSugar = append(m.InsertedBloodSugar, reading)
	return nil
}

func (m *MockHealthDataRepository) InsertWeight(ctx context.Context, traceID string, reading *schema.WeightReading) error {
	if m.Err != nil {
		return m.Err
	}
	m.InsertedWeight = append(m.InsertedWeight, reading)
	return nil
}

func (m *MockHealthDataRepository) InsertMedication(ctx context.Context, traceID string, medication *schema.Medication) error {
	if m.Err != nil {
		return m.Err
	}
	m.InsertedMedications = append(m.InsertedMedications, medication)
	return nil
}

func (m *MockHealthDataRepository) InsertMedicationLog(ctx context.Context, traceID string, log *schema.MedicationLog) error {
	if m.Err != nil {
		return m.Err
	}
	m.InsertedMedicationLogs = append(m.InsertedMedicationLogs, log)
	return nil
}

func (m *MockHealthDataRepository) GetBloodPressure(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.BloodPressureReading, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return capBloodPressure(m.BloodPressure, params.Limit), nil
}

func (m *MockHealthDataRepository) GetBloodSugar(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.BloodSugarReading, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if params.Limit > 0 && int64(len(m.BloodSugar)) > params.Limit {
		return m.BloodSugar[:params.Limit], nil
	}
	return m.BloodSugar, nil
}

func (m *MockHealthDataRepository) GetWeight(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.WeightReading, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if params.Limit > 0 && int64(len(m.Weight)) > params.Limit {
		return m.Weight[:params.Limit], nil
	}
	return m.Weight, nil
}

func (m *MockHealthDataRepository) GetMedications(ctx context.Context, traceID string, userID string) ([]schema.Medication, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Medications, nil
}

func (m *MockHealthDataRepository) GetMedicationLogs(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.MedicationLog, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.MedicationLogs, nil
}

func (m *MockHealthDataRepository) DeleteRecord(ctx context.Context, traceID string, recordType schema.RecordType, userID string, recordID string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.DeletedCount, nil
}

func capBloodPressure(readings []schema.BloodPressureReading, limit int64) []schema.BloodPressureReading {
	if limit > 0 && int64(len(readings)) > limit {
		return readings[:limit]
	}
	return readings
}
