package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/gin-gonic/gin"
)

type mockSupportSubmitter struct {
	submitFn func(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error)
}

func (m *mockSupportSubmitter) Submit(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, accountNumber, subject, message)
	}
	return nil, fmt.Errorf("not configured")
}

func newSupportTestRouter(svc SupportSubmitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSupportHandler(svc)
	v1 := r.Group("/v1", fakeAuth("1111111111", false))
	v1.POST("/support", h.Submit)
	return r
}

func TestSupportEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		submitFn       func(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error)
		expectedStatus int
	}{
		{
			name: "created - valid message",
			body: map[string]string{"subject": "Card lost", "message": "Please block my card."},
			submitFn: func(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error) {
				return &models.SupportMessage{ID: "m1", AccountNumber: accountNumber}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing subject",
			body:           map[string]string{"message": "Please block my card."},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing message",
			body:           map[string]string{"subject": "Card lost"},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSupportTestRouter(&mockSupportSubmitter{submitFn: tt.submitFn})
			w := doRequest(router, http.MethodPost, "/v1/support", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
