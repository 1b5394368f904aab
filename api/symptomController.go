package api

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/healthmate-org/healthmate-api/common"
	"github.com/healthmate-org/healthmate-api/schema"
)

type symptomPayload struct {
	Symptoms       []string `json:"symptoms"`
	AdditionalInfo string   `json:"additionalInfo"`
	Severity       string   `json:"severity"`
}

// postSymptoms analyze a symptom list and store the result
func (a *API) postSymptoms(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]

	var payload symptomPayload
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		detailed := errorInvalidParams.SetInternalMessage(err)
		return res.WriteError(&detailed)
	}
	if len(payload.Symptoms) == 0 {
		return res.WriteError(&errorInvalidParams)
	}

	analysis, err := a.symptoms.Analyze(ctx, res.TraceID, userID, payload.Symptoms, payload.AdditionalInfo, schema.ParseSeverity(payload.Severity))
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{
		"analysis":  analysis.Analysis,
		"timestamp": analysis.Timestamp,
		"symptoms":  analysis.Symptoms,
		"severity":  analysis.Severity,
	})
}

// getSymptoms list past analyses, newest first
func (a *API) getSymptoms(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	query := res.URL.Query()

	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

	analyses, err := a.symptoms.History(ctx, res.TraceID, userID, limit)
	if err != nil {
		return a.writeUseCaseError(res, err)
	}
	return res.WriteJSON(map[string]interface{}{"analyses": analyses})
}
