package common

type (
	// Status code + reason of the service health check
	Status struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	// ApiStatus returned by the /status route
	ApiStatus struct {
		Status  Status `json:"status"`
		Version string `json:"version"`
	}
)

// ReleaseNumber is overridden at build time with -ldflags
var ReleaseNumber = "0.0.0"

func NewApiStatus(code int, reason string) ApiStatus {
	return ApiStatus{
		Status:  Status{Code: code, Reason: reason},
		Version: ReleaseNumber,
	}
}
