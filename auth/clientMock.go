package auth

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

// ClientMock testify mock of the auth client
type ClientMock struct {
	mock.Mock
}

func NewMock() *ClientMock {
	return &ClientMock{}
}

func (m *ClientMock) Authenticate(req *http.Request) *TokenData {
	args := m.Called(req)
	if td := args.Get(0); td != nil {
		return td.(*TokenData)
	}
	return nil
}
