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

func TestWealthHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 成员校验
	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))

	// 家庭成员名册
	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "role"}).
			AddRow(1, 1, 1, "member").
			AddRow(2, 1, 2, "member"))

	// 候选资产：自有一条 + 别人共享一条
	mock.ExpectQuery("SELECT .* FROM `wealth_assets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "asset_type", "asset_name", "invested_amount", "current_amount", "created_at"}).
			AddRow(1, 1, "mutual_fund", "Index Fund", 100000.0, 125000.0, time.Now()).
			AddRow(2, 2, "bank", "Savings", nil, 50000.0, time.Now()))

	// Preload Sharing
	mock.ExpectQuery("SELECT .* FROM `wealth_sharing`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "shared_with_user_id"}).
			AddRow(1, 2, 1))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/wealth", NewWealthHandler().List)

	req := httptest.NewRequest("GET", "/wealth?family_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)

	mine := list[0].(map[string]interface{})
	assert.Equal(t, true, mine["is_owner"])
	assert.InDelta(t, 25.0, mine["roi"].(float64), 0.01)

	shared := list[1].(map[string]interface{})
	assert.Equal(t, false, shared["is_owner"])
	assert.Nil(t, shared["roi"]) // 银行存款不算收益率
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWealthHandler_List_MissingFamilyID(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/wealth", NewWealthHandler().List)

	req := httptest.NewRequest("GET", "/wealth", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestWealthHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wealth_assets`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	// 替换共享关系：先清空再写入
	mock.ExpectExec("DELETE FROM `wealth_sharing`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `wealth_sharing`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// 回读权威行
	mock.ExpectQuery("SELECT .* FROM `wealth_assets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "asset_type", "asset_name", "invested_amount", "current_amount"}).
			AddRow(7, 1, "stock", "RELIANCE", 80000.0, 95000.0))
	mock.ExpectQuery("SELECT .* FROM `wealth_sharing`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "shared_with_user_id"}).
			AddRow(1, 7, 2))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/wealth", NewWealthHandler().Create)

	body := `{"asset_type":"stock","asset_name":"RELIANCE","invested_amount":80000,"current_amount":95000,"sharing_user_ids":[2]}`
	req := httptest.NewRequest("POST", "/wealth", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWealthHandler_Create_InvalidType(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/wealth", NewWealthHandler().Create)

	body := `{"asset_type":"crypto","asset_name":"BTC","current_amount":100}`
	req := httptest.NewRequest("POST", "/wealth", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestWealthHandler_Create_FDRequiresMaturity(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/wealth", NewWealthHandler().Create)

	// 定期存款缺到期金额/日期
	body := `{"asset_type":"fd","asset_name":"HDFC FD","invested_amount":100000,"current_amount":100000}`
	req := httptest.NewRequest("POST", "/wealth", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestWealthHandler_Update_NotOwner(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 按 id+user_id 查不到 → 非所有者等同不存在
	mock.ExpectQuery("SELECT .* FROM `wealth_assets`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(3))
	router.PUT("/wealth/:id", NewWealthHandler().Update)

	body := `{"asset_type":"stock","asset_name":"RELIANCE","invested_amount":80000,"current_amount":95000}`
	req := httptest.NewRequest("PUT", "/wealth/7", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWealthHandler_Summary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(memberRows(1, 1))
	mock.ExpectQuery("SELECT .* FROM `family_members`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "user_id", "role"}).
			AddRow(1, 1, 1, "member").
			AddRow(2, 1, 2, "member"))
	mock.ExpectQuery("SELECT .* FROM `wealth_assets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "asset_type", "asset_name", "invested_amount", "current_amount"}).
			AddRow(1, 1, "mutual_fund", "Index Fund", 100000.0, 125000.0).
			AddRow(2, 2, "stock", "TCS", 50000.0, 60000.0))
	mock.ExpectQuery("SELECT .* FROM `wealth_sharing`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "shared_with_user_id"}).
			AddRow(1, 2, 1))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/wealth/summary", NewWealthHandler().Summary)

	req := httptest.NewRequest("GET", "/wealth/summary?family_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	my := data["my"].(map[string]interface{})
	assert.Equal(t, float64(125000), my["total"])

	family := data["family"].(map[string]interface{})
	assert.Equal(t, float64(185000), family["total"])
	assert.Equal(t, float64(35000), family["gains"])
	require.NoError(t, mock.ExpectationsWereMet())
}
