package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	infraRepo "github.com/lsestacionamento/parking-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTicketRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Ticket{}))

	tariffCfg := config.TariffConfig{
		MinimumChargeMinutes:    15,
		RoundingFractionMinutes: 15,
		LostTicketFee:           3000,
	}
	svc := service.NewTicketService(infraRepo.NewTicketRepository(db), tariffCfg, time.UTC)
	h := NewTicketHandler(svc)

	router := gin.New()
	router.POST("/tickets", h.Create)
	router.GET("/tickets", h.ListActive)
	router.PUT("/tickets/:id/finalizer", h.Finalize)
	router.GET("/tickets/history", h.History)
	router.DELETE("/tickets/history", h.PurgeHistory)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTicket(t *testing.T, router *gin.Engine) uint {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/tickets", gin.H{
		"name":        "Maria Silva",
		"phone":       "11988887777",
		"make_model":  "Honda Civic",
		"plate":       "BRA2E19",
		"hourly_rate": 12.00,
		"entry_time":  "2026-03-10T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

func TestTicketHandler_CreateValidation(t *testing.T) {
	router := setupTicketRouter(t)

	// Missing required fields.
	w := doJSON(router, http.MethodPost, "/tickets", gin.H{"name": "Maria"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-positive rate.
	w = doJSON(router, http.MethodPost, "/tickets", gin.H{
		"name":        "Maria Silva",
		"phone":       "11988887777",
		"make_model":  "Honda Civic",
		"plate":       "BRA2E19",
		"hourly_rate": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CreateAndList(t *testing.T) {
	router := setupTicketRouter(t)
	createTicket(t, router)

	w := doJSON(router, http.MethodGet, "/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Name       string  `json:"name"`
			Status     string  `json:"status"`
			HourlyRate float64 `json:"hourly_rate"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Maria Silva", resp.Data[0].Name)
	assert.Equal(t, "Ativo", resp.Data[0].Status)
	assert.Equal(t, 12.00, resp.Data[0].HourlyRate)
}

func TestTicketHandler_FinalizeFlow(t *testing.T) {
	router := setupTicketRouter(t)
	id := createTicket(t, router)

	path := fmt.Sprintf("/tickets/%d/finalizer", id)
	w := doJSON(router, http.MethodPut, path, gin.H{
		"exit_time": "2026-03-10 08:16:00",
		"payment":   "cash",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Status         string  `json:"status"`
			ChargedMinutes int     `json:"charged_minutes"`
			Total          float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Finalizado", resp.Data.Status)
	assert.Equal(t, 30, resp.Data.ChargedMinutes)
	assert.Equal(t, 6.00, resp.Data.Total)

	// Second finalize is a conflict.
	w = doJSON(router, http.MethodPut, path, gin.H{
		"exit_time": "2026-03-10 08:16:00",
		"payment":   "cash",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown payment method is rejected at binding time.
	w = doJSON(router, http.MethodPut, path, gin.H{"payment": "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown ticket.
	w = doJSON(router, http.MethodPut, "/tickets/9999/finalizer", gin.H{"payment": "cash"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketHandler_HistoryAndPurge(t *testing.T) {
	router := setupTicketRouter(t)
	id := createTicket(t, router)

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/tickets/%d/finalizer", id), gin.H{
		"payment": "pix",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/tickets/history?page=1&per_page=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items      []json.RawMessage `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, int64(1), resp.Data.Pagination.Total)

	w = doJSON(router, http.MethodDelete, "/tickets/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var purge struct {
		Data struct {
			Deleted int64 `json:"deleted"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &purge))
	assert.Equal(t, int64(1), purge.Data.Deleted)
}
