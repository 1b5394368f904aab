package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/healthmate-org/healthmate-api/common"
)

type ExportController struct {
	logger   *logrus.Logger
	exporter ExporterUseCase
}

func NewExportController(logger *logrus.Logger, exporter ExporterUseCase) ExportController {
	return ExportController{
		logger:   logger,
		exporter: exporter,
	}
}

// ExportData export the user's full record set to a file stored on S3.
// This operation is asynchronous and always returning 200.
func (c ExportController) ExportData(ctx context.Context, res *common.HttpResponseWriter) error {
	userID := res.VARS["userID"]
	go c.exporter.Export(userID, res.TraceID)
	return nil
}
