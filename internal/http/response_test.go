package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBuilder_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	plan := model.OrderPlan{
		CheapestStorePerItem: map[int64]model.StoreWithCost{},
		StoreRoutePlan: []model.StoreRoute{
			{StoreID: 1, StoreName: "Store A", TotalWholesaleCost: 21.50},
		},
		TotalWholesaleCost:  21.50,
		TotalCustomerPrice:  33.00,
		TotalMargin:         11.50,
		UncoveredProductIDs: []int64{},
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", func(c *gin.Context) {
		NewResponseBuilder(c).SuccessOK(plan)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 11.50, data["total_margin"], 0.001)
}

func TestResponseBuilder_Error(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		statusCode   int
		messageKey   string
		expectedCode string
	}{
		{
			name:         "bad request",
			statusCode:   http.StatusBadRequest,
			messageKey:   i18n.ErrKeyValidationCartItems,
			expectedCode: dto.ErrCodeInvalidRequest,
		},
		{
			name:         "internal error",
			statusCode:   http.StatusInternalServerError,
			messageKey:   i18n.ErrKeyPlanningFailed,
			expectedCode: dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(middleware.RequestID())
			router.GET("/test", func(c *gin.Context) {
				NewResponseBuilder(c).Error(tt.statusCode, tt.messageKey, assert.AnError)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.statusCode, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestResponseBuilder_ErrorWithMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", func(c *gin.Context) {
		NewResponseBuilder(c).ErrorWithMessage(http.StatusNotFound, "store not found", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "store not found", resp.Message)
}
