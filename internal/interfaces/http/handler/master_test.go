package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appmaster "github.com/erp/masterdata/internal/application/master"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/persistence"
	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/erp/masterdata/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = middleware.SetupValidator()
}

type masterFixture struct {
	router    *gin.Engine
	token     string
	companyID uuid.UUID
}

func newMasterFixture(t *testing.T) *masterFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MasterRecordModel{}))

	repo := persistence.NewGormMasterRepository(db)
	service := appmaster.NewService(repo, zap.NewNop())
	h := NewMasterHandler(service, zap.NewNop())

	jwtSvc := auth.NewJWTService("test-secret-at-least-32-characters!!", "masterdata-test", 15*time.Minute, 24*time.Hour)
	companyID := uuid.New()
	pair, err := jwtSvc.GeneratePair(uuid.New(), companyID, "alice")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.JWTAuth(jwtSvc))
	group := r.Group("/api/v1/master")
	group.GET("/currency.get", h.List("currency"))
	group.GET("/currency.getByCode/:code", h.GetByCode("currency"))
	group.POST("/currency.add", h.Save("currency"))
	group.DELETE("/currency.delete/:id", h.Delete("currency"))

	return &masterFixture{router: r, token: pair.AccessToken, companyID: companyID}
}

func (f *masterFixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, dto.Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (f *masterFixture) save(t *testing.T, req appmaster.SaveRequest) appmaster.RecordResponse {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/api/v1/master/currency.add", req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, dto.ResultSuccess, env.Result, env.Message)

	payload, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var record appmaster.RecordResponse
	require.NoError(t, json.Unmarshal(payload, &record))
	return record
}

func TestSaveCreatesRecord(t *testing.T) {
	f := newMasterFixture(t)

	record := f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true})
	assert.NotZero(t, record.ID)
	assert.Equal(t, "USD", record.Code)
	assert.Equal(t, f.companyID, record.CompanyID)
	assert.Nil(t, record.EditBy)
}

func TestSaveDuplicateCodeFails(t *testing.T) {
	f := newMasterFixture(t)
	f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true})

	w, env := f.do(t, http.MethodPost, "/api/v1/master/currency.add", appmaster.SaveRequest{
		Code: "USD", Name: "Duplicate", IsActive: true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ResultFailure, env.Result)
}

func TestSaveRejectsBadCode(t *testing.T) {
	f := newMasterFixture(t)

	_, env := f.do(t, http.MethodPost, "/api/v1/master/currency.add", appmaster.SaveRequest{
		Code: "bad code!", Name: "Spaces", IsActive: true,
	})
	assert.Equal(t, dto.ResultFailure, env.Result)
}

func TestSaveUpdatesExistingRecord(t *testing.T) {
	f := newMasterFixture(t)
	created := f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true, Remarks: "old"})

	updated := f.save(t, appmaster.SaveRequest{
		ID: created.ID, Code: "USD", Name: "United States Dollar", SeqNo: 3, IsActive: false,
	})
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "United States Dollar", updated.Name)
	assert.Equal(t, 3, updated.SeqNo)
	assert.False(t, updated.IsActive)
	// full replace: remarks omitted from the update payload are cleared
	assert.Empty(t, updated.Remarks)
	require.NotNil(t, updated.EditBy)
	assert.Equal(t, created.CreateBy, updated.CreateBy)
}

func TestListEmptyReturnsFailureEnvelope(t *testing.T) {
	f := newMasterFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/v1/master/currency.get", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ResultFailure, env.Result)
	assert.Equal(t, "No data found", env.Message)
}

func TestListReturnsPageWithTotal(t *testing.T) {
	f := newMasterFixture(t)
	for i := range 5 {
		f.save(t, appmaster.SaveRequest{Code: fmt.Sprintf("C%02d", i), Name: fmt.Sprintf("Currency %d", i), IsActive: true})
	}

	_, env := f.do(t, http.MethodGet, "/api/v1/master/currency.get?pageSize=2&pageNumber=1&sortBy=code&sortOrder=asc", nil)
	require.Equal(t, dto.ResultSuccess, env.Result)
	require.NotNil(t, env.TotalRecords)
	assert.Equal(t, int64(5), *env.TotalRecords)

	payload, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var records []appmaster.RecordResponse
	require.NoError(t, json.Unmarshal(payload, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "C00", records[0].Code)
}

func TestListSearchFilters(t *testing.T) {
	f := newMasterFixture(t)
	f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true})
	f.save(t, appmaster.SaveRequest{Code: "EUR", Name: "Euro", IsActive: true})

	_, env := f.do(t, http.MethodGet, "/api/v1/master/currency.get?search=euro", nil)
	require.Equal(t, dto.ResultSuccess, env.Result)
	require.NotNil(t, env.TotalRecords)
	assert.Equal(t, int64(1), *env.TotalRecords)
}

func TestGetByCodeFound(t *testing.T) {
	f := newMasterFixture(t)
	f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true})

	_, env := f.do(t, http.MethodGet, "/api/v1/master/currency.getByCode/usd", nil)
	require.Equal(t, dto.ResultSuccess, env.Result)

	payload, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var record appmaster.RecordResponse
	require.NoError(t, json.Unmarshal(payload, &record))
	assert.Equal(t, "USD", record.Code)
}

func TestGetByCodeMissing(t *testing.T) {
	f := newMasterFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/v1/master/currency.getByCode/XXX", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ResultFailure, env.Result)
}

func TestDeleteRecord(t *testing.T) {
	f := newMasterFixture(t)
	created := f.save(t, appmaster.SaveRequest{Code: "USD", Name: "US Dollar", IsActive: true})

	_, env := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/master/currency.delete/%d", created.ID), nil)
	assert.Equal(t, dto.ResultSuccess, env.Result)

	_, env = f.do(t, http.MethodGet, "/api/v1/master/currency.getByCode/USD", nil)
	assert.Equal(t, dto.ResultFailure, env.Result)
}

func TestDeleteMissingRecord(t *testing.T) {
	f := newMasterFixture(t)

	_, env := f.do(t, http.MethodDelete, "/api/v1/master/currency.delete/999", nil)
	assert.Equal(t, dto.ResultFailure, env.Result)
}

func TestDeleteInvalidID(t *testing.T) {
	f := newMasterFixture(t)

	_, env := f.do(t, http.MethodDelete, "/api/v1/master/currency.delete/abc", nil)
	assert.Equal(t, dto.ResultFailure, env.Result)
}
