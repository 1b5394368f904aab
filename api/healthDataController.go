package api

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/healthmate-org/healthmate-api/common"
	"github.com/healthmate-org/healthmate-api/schema"
)

type healthDataPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// postHealthData store one health record.
//
// Body shape: {"type": "<record-type>", "data": {...}}
func (a *API) postHealthData(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]

	var payload healthDataPayload
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		detailed := errorInvalidParams.SetInternalMessage(err)
		return res.WriteError(&detailed)
	}
	if payload.Type == "" || len(payload.Data) == 0 {
		return res.WriteError(&errorInvalidParams)
	}
	recordType, err := schema.ParseRecordType(payload.Type)
	if err != nil {
		detailed := errorInvalidType.SetInternalMessage(err)
		return res.WriteError(&detailed)
	}

	record, err := a.healthData.CreateRecord(ctx, res.TraceID, userID, recordType, payload.Data)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

// getHealthData list records of one type (or all) for the user
func (a *API) getHealthData(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	query := res.URL.Query()

	typeParam := query.Get("type")
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)
	days, _ := strconv.Atoi(query.Get("days"))

	records, err := a.healthData.GetRecords(ctx, res.TraceID, userID, typeParam, days, limit)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(records)
}

// deleteHealthData delete one record by id, scoped to its owner
func (a *API) deleteHealthData(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	query := res.URL.Query()

	typeParam := query.Get("type")
	recordID := query.Get("id")
	if typeParam == "" || recordID == "" {
		return res.WriteError(&errorInvalidParams)
	}
	recordType, err := schema.ParseRecordType(typeParam)
	if err != nil {
		detailed := errorInvalidType.SetInternalMessage(err)
		return res.WriteError(&detailed)
	}

	if err := a.healthData.DeleteRecord(ctx, res.TraceID, userID, recordType, recordID); err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{"success": true})
}

// getSummary dashboard summary: latest readings with their bands, the weight
// trend and today's medication adherence
func (a *API) getSummary(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]

	summary, err := a.healthData.GetDashboard(ctx, res.TraceID, userID)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(summary)
}
