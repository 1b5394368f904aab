package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthmate-org/healthmate-api/common"
)

// Exporter dumps every health record of a user as a JSON file on the blob
// store. Exports run detached from the originating request.
type Exporter struct {
	logger     *logrus.Logger
	healthData *HealthDataUseCase
	uploader   Uploader
}

func NewExporter(logger *logrus.Logger, healthData *HealthDataUseCase, uploader Uploader) Exporter {
	return Exporter{
		logger:     logger,
		healthData: healthData,
		uploader:   uploader,
	}
}

// Export fetches the user's full record set and uploads it. Failures are
// logged, there is nobody left to report them to.
func (e Exporter) Export(userID string, traceID string) {
	e.logger.Println("launching export process")
	backgroundCtx := common.TimeItContext(context.Background())
	startExportTime := strings.ReplaceAll(time.Now().UTC().Round(time.Second).String(), " ", "_")

	records, err := e.healthData.BuildExport(backgroundCtx, traceID, userID)
	if err != nil {
		e.logger.Printf("get health data failed: %v", err)
		return
	}

	var buffer bytes.Buffer
	if err := json.NewEncoder(&buffer).Encode(records); err != nil {
		e.logger.Printf("encoding export failed: %v", err)
		return
	}

	filename := strings.Join([]string{userID, startExportTime}, "_")
	if err := e.uploader.Upload(backgroundCtx, filename, &buffer); err != nil {
		e.logger.Printf("S3 upload failed: %v", err)
		return
	}
	e.logger.Println("upload to S3 done with success, terminating go routine")
}
