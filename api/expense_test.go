package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// memberRows 一条普通成员关系
func memberRows(familyID, userID uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "family_id", "user_id", "role", "created_at"}).
		AddRow(1, familyID, userID, "member", time.Now())
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 成员校验
	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	// 回读权威行
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "title", "amount", "transaction_date", "created_at", "updated_at"}).
			AddRow(10, 1, 1, "午餐", 99.99, time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/families/:id/expenses", NewExpenseHandler().Create)

	body := `{"title":"午餐","amount":99.99,"transaction_date":"2024-06-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/families/1/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_NotMember(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 非成员：查询无记录
	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(99))
	router.POST("/families/:id/expenses", NewExpenseHandler().Create)

	body := `{"title":"午餐","amount":99.99,"transaction_date":"2024-06-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/families/1/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_InvalidCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	// 类别不属于该家庭
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/families/:id/expenses", NewExpenseHandler().Create)

	body := `{"title":"午餐","amount":99.99,"category_id":42,"transaction_date":"2024-06-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/families/1/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "title", "amount", "transaction_date"}).
			AddRow(2, 1, 1, "晚餐", 120.0, time.Now()).
			AddRow(1, 1, 1, "午餐", 99.99, time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/families/:id/expenses", NewExpenseHandler().List)

	req := httptest.NewRequest("GET", "/families/1/expenses?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Len(t, data["list"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	// 软删除：匹配 0 行
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/families/:id/expenses/:eid", NewExpenseHandler().Delete)

	req := httptest.NewRequest("DELETE", "/families/1/expenses/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
