package infrastructure

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthmate-org/healthmate-api/schema"
	"github.com/healthmate-org/healthmate-api/usecase"
)

// HealthDataMongoRepository implements usecase.HealthDataRepository on the
// shared store client
type HealthDataMongoRepository struct {
	*StoreClient
}

func NewHealthDataMongoRepository(store *StoreClient) *HealthDataMongoRepository {
	return &HealthDataMongoRepository{StoreClient: store}
}

// collectionForRecordType exhaustive mapping of the closed record type enum
// to its collection. Unknown values are a programming error upstream, the
// parse step rejects them before this point.
func collectionForRecordType(recordType schema.RecordType) (string, error) {
	switch recordType {
	case schema.RecordTypeBloodPressure:
		return bloodPressureCollectionName, nil
	case schema.RecordTypeBloodSugar:
		return bloodSugarCollectionName, nil
	case schema.RecordTypeWeight:
		return weightCollectionName, nil
	case schema.RecordTypeMedication:
		return medicationsCollectionName, nil
	case schema.RecordTypeMedicationLog:
		return medicationLogsCollectionName, nil
	}
	return "", fmt.Errorf("no collection for record type %q", recordType)
}

// generateRecordQuery builds the per-user listing filter. The userId clause
// is always present, the time window only when the params carry a start.
func generateRecordQuery(userID string, params usecase.Params) bson.M {
	query := bson.M{"userId": userID}
	if !params.Start.IsZero() {
		query["timestamp"] = bson.M{"$gte": params.Start}
	}
	return query
}

func listFindOptions(params usecase.Params) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{primitive.E{Key: "timestamp", Value: -1}})
	if params.Limit > 0 {
		opts.SetLimit(params.Limit)
	}
	return opts
}

func (r *HealthDataMongoRepository) InsertBloodPressure(ctx context.Context, traceID string, reading *schema.BloodPressureReading) error {
	return r.insertRecord(ctx, traceID, bloodPressureCollectionName, reading)
}

func (r *HealthDataMongoRepository) InsertBloodSugar(ctx context.Context, traceID string, reading *schema.BloodSugarReading) error {
	return r.insertRecord(ctx, traceID, bloodSugarCollectionName, reading)
}

func (r *HealthDataMongoRepository) InsertWeight(ctx context.Context, traceID string, reading *schema.WeightReading) error {
	return r.insertRecord(ctx, traceID, weightCollectionName, reading)
}

func (r *HealthDataMongoRepository) InsertMedication(ctx context.Context, traceID string, medication *schema.Medication) error {
	return r.insertRecord(ctx, traceID, medicationsCollectionName, medication)
}

func (r *HealthDataMongoRepository) InsertMedicationLog(ctx context.Context, traceID string, log *schema.MedicationLog) error {
	return r.insertRecord(ctx, traceID, medicationLogsCollectionName, log)
}

func (r *HealthDataMongoRepository) insertRecord(ctx context.Context, traceID string, collection string, record interface{}) error {
	_, err := r.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("{%s} insert into %s: %w", traceID, collection, err)
	}
	return nil
}

func (r *HealthDataMongoRepository) GetBloodPressure(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.BloodPressureReading, error) {
	cursor, err := r.Collection(bloodPressureCollectionName).Find(ctx, generateRecordQuery(userID, params), listFindOptions(params).SetComment(traceID))
	if err != nil {
		return nil, err
	}
	readings := []schema.BloodPressureReading{}
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *HealthDataMongoRepository) GetBloodSugar(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.BloodSugarReading, error) {
	cursor, err := r.Collection(bloodSugarCollectionName).Find(ctx, generateRecordQuery(userID, params), listFindOptions(params).SetComment(traceID))
	if err != nil {
		return nil, err
	}
	readings := []schema.BloodSugarReading{}
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *HealthDataMongoRepository) GetWeight(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.WeightReading, error) {
	cursor, err := r.Collection(weightCollectionName).Find(ctx, generateRecordQuery(userID, params), listFindOptions(params).SetComment(traceID))
	if err != nil {
		return nil, err
	}
	readings := []schema.WeightReading{}
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// GetMedications returns the full medication list, newest registration first
func (r *HealthDataMongoRepository) GetMedications(ctx context.Context, traceID string, userID string) ([]schema.Medication, error) {
	opts := options.Find().
		SetSort(bson.D{primitive.E{Key: "createdAt", Value: -1}}).
		SetComment(traceID)
	cursor, err := r.Collection(medicationsCollectionName).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	medications := []schema.Medication{}
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *HealthDataMongoRepository) GetMedicationLogs(ctx context.Context, traceID string, userID string, params usecase.Params) ([]schema.MedicationLog, error) {
	cursor, err := r.Collection(medicationLogsCollectionName).Find(ctx, generateRecordQuery(userID, params), listFindOptions(params).SetComment(traceID))
	if err != nil {
		return nil, err
	}
	logs := []schema.MedicationLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteRecord removes one record by id, scoped to the owner
func (r *HealthDataMongoRepository) DeleteRecord(ctx context.Context, traceID string, recordType schema.RecordType, userID string, recordID string) (int64, error) {
	collection, err := collectionForRecordType(recordType)
	if err != nil {
		return 0, err
	}
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return 0, err
	}
	result, err := r.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return 0, fmt.Errorf("{%s} delete from %s: %w", traceID, collection, err)
	}
	return result.DeletedCount, nil
}
