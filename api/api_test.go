package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/healthmate-org/healthmate-api/auth"
	"github.com/healthmate-org/healthmate-api/infrastructure"
	"github.com/healthmate-org/healthmate-api/usecase"
)

type testAPI struct {
	router          *mux.Router
	authClient      *auth.ClientMock
	databaseAdapter *infrastructure.MockDatabaseAdapter
	healthRepo      *infrastructure.MockHealthDataRepository
	chatRepo        *infrastructure.MockChatRepository
	symptomRepo     *infrastructure.MockSymptomRepository
	generative      *infrastructure.MockGenerativeService
	uploader        *infrastructure.MockUploader
}

func initTestAPI() *testAPI {
	logger := logrus.New()
	ta := &testAPI{
		authClient:      auth.NewMock(),
		databaseAdapter: infrastructure.NewMockDatabaseAdapter(),
		healthRepo:      infrastructure.NewMockHealthDataRepository(),
		chatRepo:        infrastructure.NewMockChatRepository(),
		symptomRepo:     infrastructure.NewMockSymptomRepository(),
		generative:      infrastructure.NewMockGenerativeService("Drink plenty of water."),
		uploader:        infrastructure.NewMockUploader(),
	}

	healthDataUC := usecase.NewHealthDataUseCase(logger, ta.healthRepo)
	chatUC := usecase.NewChatUseCase(logger, ta.chatRepo, ta.generative)
	symptomUC := usecase.NewSymptomUseCase(logger, ta.symptomRepo, ta.generative)
	exporter := usecase.NewExporter(logger, healthDataUC, ta.uploader)
	exportController := NewExportController(logger, exporter)

	healthAPI := InitAPI(healthDataUC, chatUC, symptomUC, exportController, ta.databaseAdapter, ta.authClient, logger)
	ta.router = mux.NewRouter()
	healthAPI.SetHandlers("", ta.router)
	return ta
}

func (ta *testAPI) authenticateAs(userID string, isServer bool) {
	ta.authClient.On("Authenticate", mock.Anything).Return(&auth.TokenData{UserID: userID, IsServer: isServer})
}

func (ta *testAPI) request(method string, url string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func TestGetStatusOK(t *testing.T) {
	ta := initTestAPI()
	response := ta.request(http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"reason":"OK"`)
}

func TestGetStatusKO(t *testing.T) {
	ta := initTestAPI()
	ta.databaseAdapter.EnablePingError()
	response := ta.request(http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Contains(t, response.Body.String(), "Mock Ping Error")
}

func TestUnauthenticated(t *testing.T) {
	ta := initTestAPI()
	ta.authClient.On("Authenticate", mock.Anything).Return(nil)

	response := ta.request(http.MethodGet, "/v1/health/user123", "")
	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Contains(t, response.Body.String(), "unauthenticated")
}

func TestWrongUser(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("somebodyelse", false)

	response := ta.request(http.MethodGet, "/v1/health/user123", "")
	assert.Equal(t, http.StatusForbidden, response.Code)
	assert.Contains(t, response.Body.String(), "data_cant_view")
}

func TestServerTokenBypassesOwnership(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("backend", true)

	response := ta.request(http.MethodGet, "/v1/health/user123?type=all", "")
	assert.Equal(t, http.StatusOK, response.Code)
}

func TestPostHealthData(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	body := `{"type": "blood-pressure", "data": {"systolic": 120, "diastolic": 80}}`
	response := ta.request(http.MethodPost, "/v1/health/user123", body)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"success":true`)
	assert.Len(t, ta.healthRepo.InsertedBloodPressure, 1)
	assert.Equal(t, "user123", ta.healthRepo.InsertedBloodPressure[0].UserID)
}

func TestPostHealthDataUnknownType(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	body := `{"type": "heart-rate", "data": {"value": 60}}`
	response := ta.request(http.MethodPost, "/v1/health/user123", body)

	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_type")
}

func TestPostHealthDataMissingFields(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodPost, "/v1/health/user123", `{"type": "weight"}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_parameters")
}

func TestGetHealthDataUnknownType(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodGet, "/v1/health/user123?type=heart-rate", "")
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_parameters")
}

func TestDeleteHealthDataMissingID(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodDelete, "/v1/health/user123?type=weight", "")
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestDeleteHealthDataNotFound(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)
	ta.healthRepo.DeletedCount = 0

	response := ta.request(http.MethodDelete, "/v1/health/user123?type=weight&id=5f9b3b3b3b3b3b3b3b3b3b3b", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "data_not_found")
}

func TestGetSummary(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodGet, "/v1/summary/user123", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "medicationAdherence")
	assert.Contains(t, response.Body.String(), "No medications")
}

func TestPostChat(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodPost, "/v1/chat/user123", `{"message": "I have a headache"}`)
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Drink plenty of water.")
	assert.Contains(t, response.Body.String(), "sessionId")
	assert.Len(t, ta.chatRepo.Inserted, 2)
}

func TestPostChatEmptyMessage(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodPost, "/v1/chat/user123", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_parameters")
}

func TestDeleteChatAll(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)
	ta.chatRepo.DeletedCount = 7

	response := ta.request(http.MethodDelete, "/v1/chat/user123?sessionId=session_1_abcdefghi&deleteAll=true", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "All chats deleted")
	assert.Contains(t, response.Body.String(), `"deletedCount":7`)
	// deleteAll overrides the session scope
	assert.Equal(t, "", ta.chatRepo.LastDeleteScope)
}

func TestDeleteChatSession(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)
	ta.chatRepo.DeletedCount = 2

	response := ta.request(http.MethodDelete, "/v1/chat/user123?sessionId=session_1_abcdefghi", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Chat session deleted")
	assert.Equal(t, "session_1_abcdefghi", ta.chatRepo.LastDeleteScope)
}

func TestGetChatSessions(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodGet, "/v1/chat/user123/sessions", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"sessions"`)
}

func TestPostSymptoms(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	body := `{"symptoms": ["headache", "fever"], "severity": "moderate"}`
	response := ta.request(http.MethodPost, "/v1/symptoms/user123", body)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"analysis"`)
	assert.Contains(t, response.Body.String(), `"severity":"moderate"`)
	assert.Len(t, ta.symptomRepo.Inserted, 1)
}

func TestPostSymptomsEmptyList(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodPost, "/v1/symptoms/user123", `{"symptoms": []}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_parameters")
}

func TestExportData(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	// the export itself runs detached, the route replies right away
	response := ta.request(http.MethodGet, "/export/user123", "")
	assert.Equal(t, http.StatusOK, response.Code)
}

func TestNotFoundRoute(t *testing.T) {
	ta := initTestAPI()

	response := ta.request(http.MethodGet, "/v1/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestUserIDTooLong(t *testing.T) {
	ta := initTestAPI()
	ta.authenticateAs("user123", false)

	response := ta.request(http.MethodGet, "/v1/health/"+strings.Repeat("a", 65), "")
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "invalid_userid")
}
