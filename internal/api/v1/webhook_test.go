package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubWebhookService records ProcessEvent calls and returns a canned error.
type stubWebhookService struct {
	payloads   [][]byte
	signatures []string
	err        error
}

func (s *stubWebhookService) ProcessEvent(payload []byte, signature string) error {
	s.payloads = append(s.payloads, payload)
	s.signatures = append(s.signatures, signature)
	return s.err
}

func (s *stubWebhookService) HandleInvoiceSucceeded(context.Context, string) error { return nil }
func (s *stubWebhookService) Close()                                               {}

func newWebhookRouter(svc *stubWebhookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	zapLogger, _ := zap.NewDevelopment()
	log := &logger.Logger{SugaredLogger: zapLogger.Sugar()}

	router := gin.New()
	router.Use(middleware.ErrorHandler)
	router.POST("/v1/webhooks/stripe", NewWebhookHandler(svc, log).HandleStripeEvent)
	return router
}

func TestHandleStripeEvent_AcknowledgesWithNoContent(t *testing.T) {
	svc := &stubWebhookService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{"subscription":"sub_1"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Stripe-Signature", "t=1709294400,v1=abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, svc.payloads, 1)
	assert.Equal(t, body, svc.payloads[0])
	require.Len(t, svc.signatures, 1)
	assert.Equal(t, "t=1709294400,v1=abc", svc.signatures[0])
}

func TestHandleStripeEvent_RejectsMalformedPayload(t *testing.T) {
	svc := &stubWebhookService{
		err: ierr.NewError("event type is missing").
			WithHint("Webhook payload must carry an event type").
			Mark(ierr.ErrValidation),
	}
	router := newWebhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
