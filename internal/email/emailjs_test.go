package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

func testNotifyConfig() *models.NotificationConfig {
	return &models.NotificationConfig{
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pk_z",
		PrivateKey: "secret",
	}
}

func TestEmailJSClient_SendPayload(t *testing.T) {
	var got sendRequest
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewEmailJSClient()
	client.Endpoint = srv.URL

	params := Params{
		Title:   "Delayed in send roller to vendor - Roller R-001",
		Message: "<div>body</div>",
		Name:    "Roller Alert System",
		Email:   "reply@example.com",
		ToEmail: "a@example.com; b@example.com",
	}
	err := client.Send(context.Background(), testNotifyConfig(), params)
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pk_z", got.UserID)
	assert.Equal(t, "secret", got.AccessToken)
	assert.Equal(t, params, got.TemplateParams)
}

func TestEmailJSClient_SendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user_id parameter is invalid", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewEmailJSClient()
	client.Endpoint = srv.URL

	err := client.Send(context.Background(), testNotifyConfig(), Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "user_id parameter is invalid")
}

func TestRenderAlertBody(t *testing.T) {
	body, err := RenderAlertBody(AlertBodyData{
		RollerNumber:  "R-001",
		Reason:        "Delayed in send roller to vendor",
		CurrentStatus: "Production End",
		Line:          "SG#1",
		Position:      "Top",
		RecordDate:    "10/03/2024",
		OverdueDays:   12,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "R-001")
	assert.Contains(t, body, "Delayed in send roller to vendor")
	assert.Contains(t, body, "Production End")
	assert.Contains(t, body, "SG#1")
	assert.Contains(t, body, "10/03/2024")
	assert.Contains(t, body, "Overdue by 12 days")
}

func TestRenderAlertBody_MissingFieldsFallBack(t *testing.T) {
	body, err := RenderAlertBody(AlertBodyData{Reason: "x"})
	require.NoError(t, err)
	assert.Contains(t, body, "N/A")
}
