package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/healthmate-org/healthmate-api/auth"
	"github.com/healthmate-org/healthmate-api/common"
	"github.com/healthmate-org/healthmate-api/usecase"
)

type (
	// API struct for healthmate-api
	API struct {
		healthData       HealthDataUseCase
		chat             ChatUseCase
		symptoms         SymptomUseCase
		exportController ExportController
		databaseAdapter  usecase.DatabaseAdapter
		authClient       auth.ClientInterface
		logger           *logrus.Logger
	}
)

const (
	// HealthAPIPrefix logging prefix
	HealthAPIPrefix = "api/health "
)

var (
	errorStatusCheck      = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_status_check", Message: "checking of the status endpoint showed an error"}
	errorUnauthenticated  = common.DetailedError{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: "no valid authentication token provided"}
	errorNoViewPermission = common.DetailedError{Status: http.StatusForbidden, Code: "data_cant_view", Message: "user is not authorized to view data"}
	errorInvalidParams    = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_parameters", Message: "one or more parameters are invalid"}
	errorInvalidType      = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_type", Message: "unknown record type"}
	errorNotFound         = common.DetailedError{Status: http.StatusNotFound, Code: "data_not_found", Message: "no data for specified user"}
	errorRunningQuery     = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_store_error", Message: "internal server error"}
	errorGenerative       = common.DetailedError{Status: http.StatusInternalServerError, Code: "generative_error", Message: "internal server error"}
	errorLoadingEvents    = common.DetailedError{Status: http.StatusInternalServerError, Code: "json_marshal_error", Message: "internal server error"}
)

func InitAPI(healthDataUC HealthDataUseCase, chatUC ChatUseCase, symptomUC SymptomUseCase, exportController ExportController, dbAdapter usecase.DatabaseAdapter, authClient auth.ClientInterface, logger *logrus.Logger) *API {
	return &API{
		healthData:       healthDataUC,
		chat:             chatUC,
		symptoms:         symptomUC,
		exportController: exportController,
		databaseAdapter:  dbAdapter,
		authClient:       authClient,
		logger:           logger,
	}
}

// SetHandlers set the API routes
func (a *API) SetHandlers(prefix string, rtr *mux.Router) {

	a.setHandlers(prefix+"/v1", rtr)

	rtr.HandleFunc("/export/{userID}", a.middleware(a.exportController.ExportData, true, "userID")).Methods(http.MethodGet)

	rtr.HandleFunc("/status", a.getStatus).Methods(http.MethodGet)
}

func (a *API) setHandlers(prefix string, rtr *mux.Router) {
	rtr.HandleFunc(prefix+"/health/{userID}", a.middleware(a.postHealthData, true, "userID")).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/health/{userID}", a.middleware(a.getHealthData, true, "userID")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/health/{userID}", a.middleware(a.deleteHealthData, true, "userID")).Methods(http.MethodDelete)
	rtr.HandleFunc(prefix+"/summary/{userID}", a.middleware(a.getSummary, true, "userID")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/chat/{userID}/sessions", a.middleware(a.getChatSessions, true, "userID")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/chat/{userID}", a.middleware(a.postChat, true, "userID")).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/chat/{userID}", a.middleware(a.getChat, true, "userID")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/chat/{userID}", a.middleware(a.deleteChat, true, "userID")).Methods(http.MethodDelete)
	rtr.HandleFunc(prefix+"/symptoms/{userID}", a.middleware(a.postSymptoms, true, "userID")).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/symptoms/{userID}", a.middleware(a.getSymptoms, true, "userID")).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/{.*}", a.middleware(a.getNotFound, false)).Methods(http.MethodGet)
}

// getNotFound catch-all for unknown v1 routes
func (a *API) getNotFound(ctx context.Context, res *common.HttpResponseWriter) error {
	res.WriteHeader(http.StatusNotFound)
	return nil
}

// getStatus get the api status, reporting the storage ping result
func (a *API) getStatus(res http.ResponseWriter, req *http.Request) {
	start := time.Now()
	var s common.ApiStatus
	if err := a.databaseAdapter.Ping(req.Context()); err != nil {
		errorLog := errorStatusCheck.SetInternalMessage(err)
		a.logError(&errorLog, start)
		s = common.NewApiStatus(errorLog.Status, err.Error())
	} else {
		s = common.NewApiStatus(http.StatusOK, "OK")
	}
	if jsonDetails, err := json.Marshal(s); err != nil {
		a.jsonError(res, errorLoadingEvents.SetInternalMessage(err), start)
	} else {
		res.Header().Add("content-type", "application/json")
		res.WriteHeader(s.Status.Code)
		res.Write(jsonDetails)
	}
}

// writeUseCaseError map a use case error to its stable outward signal
func (a *API) writeUseCaseError(res *common.HttpResponseWriter, err error) error {
	var detailed common.DetailedError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		detailed = errorInvalidParams.SetInternalMessage(err)
	case errors.Is(err, usecase.ErrNotFound):
		detailed = errorNotFound.SetInternalMessage(err)
	case errors.Is(err, usecase.ErrUpstream):
		detailed = errorGenerative.SetInternalMessage(err)
	default:
		detailed = errorRunningQuery.SetInternalMessage(err)
	}
	return res.WriteError(&detailed)
}

// log error detail and write as application/json
func (a *API) jsonError(res http.ResponseWriter, err common.DetailedError, startedAt time.Time) {
	a.logError(&err, startedAt)
	jsonErr, _ := json.Marshal(err)

	res.Header().Add("content-type", "application/json")
	res.WriteHeader(err.Status)
	res.Write(jsonErr)
}

func (a *API) logError(err *common.DetailedError, startedAt time.Time) {
	err.ID = uuid.New().String()
	a.logger.Println(HealthAPIPrefix, fmt.Sprintf("[%s][%s] failed after [%.3f]secs with error [%s][%s] ", err.ID, err.Code, time.Since(startedAt).Seconds(), err.Message, err.InternalMessage))
}
