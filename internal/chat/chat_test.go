package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/models"
)

func newService(t *testing.T, e *echo.Echo) *Service {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &Service{Client: api.New(srv.URL)}
}

func TestSendForwardsContext(t *testing.T) {
	var got struct {
		UserID      string              `json:"user_id"`
		Message     string              `json:"message"`
		UserContext *models.UserContext `json:"user_context"`
	}
	e := echo.New()
	e.POST("/chat/send", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]any{
			"success":    true,
			"message":    "Here are 3 shelters near Delhi",
			"user_id":    got.UserID,
			"tools_used": []string{"search_nearby"},
		})
	})
	svc := newService(t, e)

	city := "Delhi"
	lat, lng := 28.6139, 77.209
	uc := models.UserContext{Location: &city, Latitude: &lat, Longitude: &lng}
	resp, err := svc.Send(context.Background(), "user-123", "Find shelter nearby Delhi", &uc)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.UserID != "user-123" {
		t.Fatalf("expected user_id user-123, got %q", got.UserID)
	}
	if got.Message != "Find shelter nearby Delhi" {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if got.UserContext == nil || got.UserContext.Location == nil || *got.UserContext.Location != "Delhi" {
		t.Fatalf("expected context location Delhi, got %+v", got.UserContext)
	}
	if resp.Message != "Here are 3 shelters near Delhi" {
		t.Fatalf("unexpected reply %q", resp.Message)
	}
	if len(resp.ToolsUsed) != 1 || resp.ToolsUsed[0] != "search_nearby" {
		t.Fatalf("unexpected tools %v", resp.ToolsUsed)
	}
}

func TestSendOmitsEmptyContext(t *testing.T) {
	var raw map[string]any
	e := echo.New()
	e.POST("/chat/send", func(c echo.Context) error {
		if err := c.Bind(&raw); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "hi", "user_id": "u"})
	})
	svc := newService(t, e)

	if _, err := svc.Send(context.Background(), "u", "hello", &models.UserContext{}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, ok := raw["user_context"]; ok {
		t.Fatalf("empty context should be omitted, body was %v", raw)
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	var gotLimit string
	e := echo.New()
	e.GET("/chat/history/:id", func(c echo.Context) error {
		gotLimit = c.QueryParam("limit")
		return c.JSON(http.StatusOK, []Exchange{
			{ID: 1, UserMessage: "hi", AgentResponse: "hello", ToolsUsed: []string{}, Timestamp: "2026-08-01T00:00:00Z"},
		})
	})
	svc := newService(t, e)

	history, err := svc.History(context.Background(), "user-123", 500)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if gotLimit != "100" {
		t.Fatalf("expected limit clamped to 100, got %q", gotLimit)
	}
	if len(history) != 1 || history[0].AgentResponse != "hello" {
		t.Fatalf("unexpected history %+v", history)
	}

	if _, err := svc.History(context.Background(), "user-123", 0); err != nil {
		t.Fatalf("History: %v", err)
	}
	if gotLimit != "10" {
		t.Fatalf("expected default limit 10, got %q", gotLimit)
	}
}

func TestClearHistory(t *testing.T) {
	var gotUser string
	e := echo.New()
	e.DELETE("/chat/history/:id", func(c echo.Context) error {
		gotUser = c.Param("id")
		return c.JSON(http.StatusOK, Receipt{Success: true, Message: "Deleted 4 messages from chat history"})
	})
	svc := newService(t, e)

	receipt, err := svc.ClearHistory(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if gotUser != "user-123" {
		t.Fatalf("expected path user user-123, got %q", gotUser)
	}
	if !receipt.Success {
		t.Fatalf("expected success receipt, got %+v", receipt)
	}
}

func TestSubmitFeedback(t *testing.T) {
	var got struct {
		Helpful      bool   `json:"helpful"`
		FeedbackText string `json:"feedback_text"`
	}
	var gotID string
	e := echo.New()
	e.POST("/chat/feedback/:id", func(c echo.Context) error {
		gotID = c.Param("id")
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, Receipt{Success: true, Message: "Thank you for your feedback!"})
	})
	svc := newService(t, e)

	if err := svc.SubmitFeedback(context.Background(), 42, true, "very helpful"); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if gotID != "42" {
		t.Fatalf("expected message id 42 in path, got %q", gotID)
	}
	if !got.Helpful || got.FeedbackText != "very helpful" {
		t.Fatalf("unexpected body %+v", got)
	}
}
