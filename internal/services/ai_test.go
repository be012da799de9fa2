package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/property-management-api/internal/services"
)

func chatServer(t *testing.T, content string, prompts *[]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && prompts != nil {
			for _, m := range req.Messages {
				*prompts = append(*prompts, m.Content)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   req.Model,
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]string{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAIService_DraftReminder(t *testing.T) {
	var prompts []string
	srv := chatServer(t, "  Hi Tom, your rent of 1000.00 is due on April 1.  \n", &prompts)

	ai := services.NewAIService("test-key", srv.URL+"/v1")
	message, err := ai.DraftReminder(context.Background(), services.ReminderBrief{
		TenantName:   "Tom Tenant",
		PropertyName: "Maple Court",
		Unit:         "2A",
		RentAmount:   decimal.NewFromInt(1000),
		RentDueDate:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		RentStatus:   "pending",
		ReminderType: "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Tom, your rent of 1000.00 is due on April 1.", message)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Tom Tenant")
	assert.Contains(t, prompts[0], "Maple Court, unit 2A")
	assert.Contains(t, prompts[0], "2025-04-01")
}

func TestAIService_EmptyResponse(t *testing.T) {
	srv := chatServer(t, "   ", nil)

	ai := services.NewAIService("test-key", srv.URL+"/v1")
	_, err := ai.DraftReminder(context.Background(), services.ReminderBrief{TenantName: "Tom"})
	assert.Error(t, err)
}
