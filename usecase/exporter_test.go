package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/healthmate-org/healthmate-api/infrastructure"
	"github.com/healthmate-org/healthmate-api/schema"
	"github.com/healthmate-org/healthmate-api/usecase"
)

func TestExport(t *testing.T) {
	repo := infrastructure.NewMockHealthDataRepository()
	repo.Weight = []schema.WeightReading{{UserID: "user123", Value: 150}}
	uploader := infrastructure.NewMockUploader()
	exporter := usecase.NewExporter(logrus.New(), usecase.NewHealthDataUseCase(logrus.New(), repo), uploader)

	exporter.Export("user123", "trace")

	if assert.Len(t, uploader.Filenames, 1) {
		assert.True(t, strings.HasPrefix(uploader.Filenames[0], "user123_"))
		assert.NotContains(t, uploader.Filenames[0], " ")
	}
	if assert.Len(t, uploader.Contents, 1) {
		assert.Contains(t, uploader.Contents[0], `"weight"`)
		assert.Contains(t, uploader.Contents[0], `"medications"`)
	}
}

func TestExportStoreFailure(t *testing.T) {
	repo := infrastructure.NewMockHealthDataRepository()
	repo.Err = errors.New("connection reset")
	uploader := infrastructure.NewMockUploader()
	exporter := usecase.NewExporter(logrus.New(), usecase.NewHealthDataUseCase(logrus.New(), repo), uploader)

	// failures are logged, nothing reaches the blob store
	exporter.Export("user123", "trace")
	assert.Empty(t, uploader.Filenames)
}
