package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsHandler_Overview_NoBudget(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/families/:id/statistics/overview", NewStatisticsHandler().Overview)

	req := httptest.NewRequest("GET", "/families/1/statistics/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Nil(t, data["budget"])
	assert.Equal(t, "good", data["health"])
	assert.Equal(t, float64(0), data["month_expense"])
	assert.Contains(t, data["remaining_label"], "₹")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_Overview_WithBudget(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "title", "amount", "transaction_date"}).
			AddRow(1, 1, 1, "午餐", 4000.0, now))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "source", "amount", "date"}).
			AddRow(1, 1, 1, "工资", 50000.0, now))
	// 预算区间完全落在本月内，不需要二次取数
	monthFirst := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "amount", "start_date", "end_date", "created_by", "created_at"}).
			AddRow(1, 1, 10000.0, monthFirst, monthFirst.AddDate(0, 1, 0).Add(-time.Second), 1, monthFirst))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/families/:id/statistics/overview", NewStatisticsHandler().Overview)

	req := httptest.NewRequest("GET", "/families/1/statistics/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(10000), stats["total"])
	assert.Equal(t, float64(4000), stats["spent"])
	assert.Equal(t, float64(6000), stats["remaining"])
	assert.Equal(t, float64(40), stats["percentage"])
	assert.Equal(t, "good", data["health"])
	assert.Equal(t, float64(4000), data["month_expense"])
	assert.Equal(t, float64(50000), data["month_income"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_Dashboard_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/families/:id/statistics/dashboard", NewStatisticsHandler().Dashboard)

	req := httptest.NewRequest("GET", "/families/1/statistics/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "3months", data["period"])
	// 默认窗口三个自然月，空数据也逐月出桶
	monthly := data["monthly"].([]interface{})
	assert.Len(t, monthly, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_Dashboard_YearWindow(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/families/:id/statistics/dashboard", NewStatisticsHandler().Dashboard)

	req := httptest.NewRequest("GET", "/families/1/statistics/dashboard?period=year", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	monthly := data["monthly"].([]interface{})
	assert.Len(t, monthly, 12)
	require.NoError(t, mock.ExpectationsWereMet())
}
