package whatsapp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/whatsappclient"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminder(phone *string) *domain.SessionReminder {
	return &domain.SessionReminder{
		SessionID:     "s-1",
		BusinessName:  "Studio Bella",
		ClientName:    "Carla",
		ClientPhone:   phone,
		ServiceName:   "Limpeza de pele",
		SessionNumber: 2,
		TotalSessions: 5,
		ScheduledAt:   time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestSendSessionReminder(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	cfg := &config.Config{WhatsApp: config.WhatsApp{
		URL:           server.URL + "/v19.0",
		PhoneNumberID: "123",
		AccessToken:   "token",
		Enabled:       true,
	}}
	service := New(cfg, whatsappclient.NewClient(cfg))

	phone := "+57 (300) 123-4567"
	id, err := service.SendSessionReminder(context.Background(), newReminder(&phone))

	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Contains(t, body, `"to":"573001234567"`)
	assert.Contains(t, body, "sessão 2 de 5")
}

func TestSendSessionReminderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"expired","type":"OAuthException","code":190}}`))
	}))
	defer server.Close()

	cfg := &config.Config{WhatsApp: config.WhatsApp{URL: server.URL, PhoneNumberID: "1", Enabled: true}}
	service := New(cfg, whatsappclient.NewClient(cfg))

	phone := "5511999998888"
	_, err := service.SendSessionReminder(context.Background(), newReminder(&phone))

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "190"))
}

func TestSendSessionReminderGuards(t *testing.T) {
	disabled := New(&config.Config{}, nil)
	phone := "5511999998888"
	_, err := disabled.SendSessionReminder(context.Background(), newReminder(&phone))
	assert.True(t, errors.Is(err, ErrDisabled))

	enabled := New(&config.Config{WhatsApp: config.WhatsApp{Enabled: true}}, nil)
	_, err = enabled.SendSessionReminder(context.Background(), newReminder(nil))
	assert.ErrorIs(t, err, ErrInvalidPhone)

	short := "123"
	_, err = enabled.SendSessionReminder(context.Background(), newReminder(&short))
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511987654321", NormalizePhone("+55 (11) 98765-4321"))
	assert.Equal(t, "", NormalizePhone("abc"))
}
