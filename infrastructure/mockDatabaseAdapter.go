package infrastructure

import (
	"bytes"
	"context"
	"errors"
)

// MockDatabaseAdapter use for unit tests
type MockDatabaseAdapter struct {
	pingError bool
}

func NewMockDatabaseAdapter() *MockDatabaseAdapter {
	return &MockDatabaseAdapter{}
}

func (m *MockDatabaseAdapter) EnablePingError() {
	m.pingError = true
}

func (m *MockDatabaseAdapter) DisablePingError() {
	m.pingError = false
}

func (m *MockDatabaseAdapter) Start(ctx context.Context) error {
	return nil
}

func (m *MockDatabaseAdapter) Ping(ctx context.Context) error {
	if m.pingError {
		return errors.New("Mock Ping Error")
	}
	return nil
}

func (m *MockDatabaseAdapter) Close(ctx context.Context) error {
	return nil
}

// MockGenerativeService use for unit tests
type MockGenerativeService struct {
	Reply string
	Err   error

	Prompts []string
}

func NewMockGenerativeService(reply string) *MockGenerativeService {
	return &MockGenerativeService{Reply: reply}
}

func (m *MockGenerativeService) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// MockUploader use for unit tests
type MockUploader struct {
	Err error

	Filenames []string
	Contents  []string
}

func NewMockUploader() *MockUploader {
	return &MockUploader{}
}

func (m *MockUploader) Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error {
	if m.Err != nil {
		return m.Err
	}
	m.Filenames = append(m.Filenames, filename)
	m.Contents = append(m.Contents, buffer.String())
	return nil
}
