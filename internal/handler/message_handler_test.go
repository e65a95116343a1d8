package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wrenfeed/social-api/internal/models"
)

// ---- mock implementation ----

type mockMessageManager struct {
	createFn       func(*models.Message) (*models.Message, error)
	getByIDFn      func(int) (*models.Message, error)
	getAllFn       func() ([]models.Message, error)
	getByAccountFn func(int) ([]models.Message, error)
	updateTextFn   func(int, *models.Message) (*models.Message, error)
	deleteByIDFn   func(int) error
}

func (m *mockMessageManager) Create(candidate *models.Message) (*models.Message, error) {
	if m.createFn != nil {
		return m.createFn(candidate)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageManager) GetByID(id int) (*models.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageManager) GetAll() ([]models.Message, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageManager) GetByAccount(accountID int) ([]models.Message, error) {
	if m.getByAccountFn != nil {
		return m.getByAccountFn(accountID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageManager) UpdateText(id int, patch *models.Message) (*models.Message, error) {
	if m.updateTextFn != nil {
		return m.updateTextFn(id, patch)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageManager) DeleteByID(id int) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(id)
	}
	return fmt.Errorf("not configured")
}

func newMessageTestRouter(messages MessageManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMessageHandler(messages)
	r.POST("/messages", h.CreateMessage)
	r.GET("/messages", h.GetAllMessages)
	r.GET("/messages/:message_id", h.GetMessageByID)
	r.DELETE("/messages/:message_id", h.DeleteMessage)
	r.PATCH("/messages/:message_id", h.UpdateMessageText)
	r.GET("/accounts/:account_id/messages", h.GetMessagesByAccount)
	return r
}

// ---- tests ----

func TestCreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(*models.Message) (*models.Message, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: map[string]interface{}{"posted_by": 1, "message_text": "hi", "time_posted_epoch": 1669947792},
			createFn: func(candidate *models.Message) (*models.Message, error) {
				created := *candidate
				created.ID = 1
				return &created, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - missing text",
			body:           map[string]interface{}{"posted_by": 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - rejected by service",
			body: map[string]interface{}{"posted_by": 99, "message_text": "hi"},
			createFn: func(*models.Message) (*models.Message, error) {
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - store failure",
			body: map[string]interface{}{"posted_by": 1, "message_text": "hi"},
			createFn: func(*models.Message) (*models.Message, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMessageTestRouter(&mockMessageManager{createFn: tt.createFn})
			w := doRequest(router, http.MethodPost, "/messages", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestGetAllMessages(t *testing.T) {
	router := newMessageTestRouter(&mockMessageManager{
		getAllFn: func() ([]models.Message, error) {
			return []models.Message{
				{ID: 1, PostedBy: 1, Text: "first", PostedAtEpoch: 100},
				{ID: 2, PostedBy: 2, Text: "second", PostedAtEpoch: 200},
			}, nil
		},
	})

	w := doRequest(router, http.MethodGet, "/messages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var messages []models.Message
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(messages))
	}
}

func TestGetMessageByID(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getByIDFn      func(int) (*models.Message, error)
		expectedStatus int
		expectEmpty    bool
	}{
		{
			name: "success",
			url:  "/messages/1",
			getByIDFn: func(id int) (*models.Message, error) {
				return &models.Message{ID: id, PostedBy: 1, Text: "hi"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "absent - 200 with empty body",
			url:  "/messages/404",
			getByIDFn: func(int) (*models.Message, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectEmpty:    true,
		},
		{
			name:           "bad request - id not an integer",
			url:            "/messages/abc",
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMessageTestRouter(&mockMessageManager{getByIDFn: tt.getByIDFn})
			w := doRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectEmpty && w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", w.Body.String())
			}
		})
	}
}

func TestDeleteMessage(t *testing.T) {
	t.Run("existing message is returned", func(t *testing.T) {
		deleted := false
		router := newMessageTestRouter(&mockMessageManager{
			getByIDFn: func(id int) (*models.Message, error) {
				return &models.Message{ID: id, PostedBy: 1, Text: "bye"}, nil
			},
			deleteByIDFn: func(int) error {
				deleted = true
				return nil
			},
		})

		w := doRequest(router, http.MethodDelete, "/messages/5", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if !deleted {
			t.Error("expected DeleteByID to be called")
		}

		var message models.Message
		if err := json.Unmarshal(w.Body.Bytes(), &message); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if message.Text != "bye" {
			t.Errorf("expected deleted message in body, got %+v", message)
		}
	})

	t.Run("missing message - 200 with empty body", func(t *testing.T) {
		router := newMessageTestRouter(&mockMessageManager{
			getByIDFn: func(int) (*models.Message, error) { return nil, nil },
		})

		w := doRequest(router, http.MethodDelete, "/messages/404", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("bad request - id not an integer", func(t *testing.T) {
		router := newMessageTestRouter(&mockMessageManager{})
		w := doRequest(router, http.MethodDelete, "/messages/abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestUpdateMessageText(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		updateTextFn   func(int, *models.Message) (*models.Message, error)
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/messages/5",
			body: map[string]string{"message_text": "new"},
			updateTextFn: func(id int, patch *models.Message) (*models.Message, error) {
				return &models.Message{ID: id, PostedBy: 1, Text: patch.Text, PostedAtEpoch: 100}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - missing text",
			url:            "/messages/5",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - message missing",
			url:  "/messages/404",
			body: map[string]string{"message_text": "new"},
			updateTextFn: func(int, *models.Message) (*models.Message, error) {
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - id not an integer",
			url:            "/messages/abc",
			body:           map[string]string{"message_text": "new"},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMessageTestRouter(&mockMessageManager{updateTextFn: tt.updateTextFn})
			w := doRequest(router, http.MethodPatch, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestGetMessagesByAccount(t *testing.T) {
	t.Run("empty account yields empty array", func(t *testing.T) {
		router := newMessageTestRouter(&mockMessageManager{
			getByAccountFn: func(int) ([]models.Message, error) { return []models.Message{}, nil },
		})

		w := doRequest(router, http.MethodGet, "/accounts/9/messages", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != "[]" {
			t.Errorf("expected empty JSON array, got %q", body)
		}
	})

	t.Run("store failure maps to 400", func(t *testing.T) {
		router := newMessageTestRouter(&mockMessageManager{
			getByAccountFn: func(int) ([]models.Message, error) {
				return nil, fmt.Errorf("connection refused")
			},
		})

		w := doRequest(router, http.MethodGet, "/accounts/9/messages", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("bad request - id not an integer", func(t *testing.T) {
		router := newMessageTestRouter(&mockMessageManager{})
		w := doRequest(router, http.MethodGet, "/accounts/abc/messages", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}
