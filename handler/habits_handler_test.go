package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitValidator()
}

func TestCreateHabitRejectsUnauthenticated(t *testing.T) {
	h := NewHabitsHandler(nil)

	router := gin.New()
	router.POST("/api/habits", h.CreateHabit)

	body := bytes.NewBufferString(`{"title":"Read","category":"LEARNING","frequency":"DAILY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/habits", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCreateHabitRejectsMalformedBody(t *testing.T) {
	h := NewHabitsHandler(nil)

	router := gin.New()
	router.POST("/api/habits", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		h.CreateHabit(c)
	})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"title":`},
		{"missing title", `{"category":"LEARNING","frequency":"DAILY"}`},
		{"missing category", `{"title":"Read","frequency":"DAILY"}`},
		{"bad reminder time", `{"title":"Read","category":"LEARNING","frequency":"DAILY","reminder_time":"25:99"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/habits", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
