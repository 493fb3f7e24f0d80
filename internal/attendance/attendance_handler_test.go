package attendance_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = attendanceerrors.ErrAlreadyCheckedOut

type fakeService struct {
	checkInFn         func(ctx context.Context, userID string) (attendance.CheckInResponse, error)
	checkOutFn        func(ctx context.Context, userID string) (attendance.CheckOutResponse, error)
	todayStatusFn     func(ctx context.Context, userID string) (*attendance.RecordResponse, error)
	myHistoryFn       func(ctx context.Context, userID string) ([]attendance.RecordResponse, error)
	mySummaryFn       func(ctx context.Context, userID string) (attendance.Summary, error)
	allRecordsFn      func(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error)
	employeeHistoryFn func(ctx context.Context, targetUserID string) ([]attendance.RecordResponse, error)
	fleetSummaryFn    func(ctx context.Context) (attendance.FleetSummaryResponse, error)
	todayFleetFn      func(ctx context.Context) ([]attendance.RecordResponse, error)
	exportRowsFn      func(ctx context.Context) ([]attendance.ExportRow, error)
}

func (f *fakeService) CheckIn(ctx context.Context, userID string) (attendance.CheckInResponse, error) {
	return f.checkInFn(ctx, userID)
}
func (f *fakeService) CheckOut(ctx context.Context, userID string) (attendance.CheckOutResponse, error) {
	return f.checkOutFn(ctx, userID)
}
func (f *fakeService) TodayStatus(ctx context.Context, userID string) (*attendance.RecordResponse, error) {
	return f.todayStatusFn(ctx, userID)
}
func (f *fakeService) MyHistory(ctx context.Context, userID string) ([]attendance.RecordResponse, error) {
	return f.myHistoryFn(ctx, userID)
}
func (f *fakeService) MySummary(ctx context.Context, userID string) (attendance.Summary, error) {
	return f.mySummaryFn(ctx, userID)
}
func (f *fakeService) AllRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error) {
	return f.allRecordsFn(ctx, filter)
}
func (f *fakeService) EmployeeHistory(ctx context.Context, targetUserID string) ([]attendance.RecordResponse, error) {
	return f.employeeHistoryFn(ctx, targetUserID)
}
func (f *fakeService) FleetSummary(ctx context.Context) (attendance.FleetSummaryResponse, error) {
	return f.fleetSummaryFn(ctx)
}
func (f *fakeService) TodayFleet(ctx context.Context) ([]attendance.RecordResponse, error) {
	return f.todayFleetFn(ctx)
}
func (f *fakeService) ExportRows(ctx context.Context) ([]attendance.ExportRow, error) {
	return f.exportRowsFn(ctx)
}

func TestHandler_CheckInAndTodayStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, uid string) (attendance.CheckInResponse, error) {
			assert.Equal(t, userID, uid)
			return attendance.CheckInResponse{Message: "Checked In", Status: attendance.StatusPresent}, nil
		},
		todayStatusFn: func(ctx context.Context, uid string) (*attendance.RecordResponse, error) {
			return nil, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/checkin", nil)
	h.CheckIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"present"`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id", userID)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
	h.TodayStatus(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "Not checked in today")
}

func TestHandler_GetAll_PaginatesAndPassesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotFilter attendance.RecordFilter
	svc := &fakeService{
		allRecordsFn: func(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error) {
			gotFilter = filter
			return []attendance.RecordResponse{
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
			}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/attendance/all?status=late&employeeId=EMP-001&page=1&page_size=2", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
	assert.Equal(t, "late", gotFilter.Status)
	assert.Equal(t, "EMP-001", gotFilter.EmployeeID)
}

func TestHandler_Export_WritesCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hours := 8.5
	svc := &fakeService{
		exportRowsFn: func(ctx context.Context) ([]attendance.ExportRow, error) {
			return []attendance.ExportRow{
				{Name: "Asha", Date: "2025-03-10", Status: "present", Hours: &hours},
				{Name: "Budi", Date: "2025-03-10", Status: "late"},
			}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, "Name,Date,Status,Total Hours", lines[0])
	assert.Equal(t, "Asha,2025-03-10,present,8.50", lines[1])
	assert.Equal(t, "Budi,2025-03-10,late,", lines[2])
}

func TestHandler_CheckIn_IdempotentReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	calls := 0
	svc := &fakeService{
		checkInFn: func(ctx context.Context, uid string) (attendance.CheckInResponse, error) {
			calls++
			return attendance.CheckInResponse{Message: "Checked In", Status: attendance.StatusPresent}, nil
		},
	}

	rdb, rmock := redismock.NewClientMock()
	h := attendance.NewHandlerWithRedis(svc, rdb)

	r := gin.New()
	r.POST("/attendance/checkin",
		func(c *gin.Context) { c.Set("user_id", userID) },
		middleware.Idempotency(rdb),
		h.CheckIn,
	)

	cacheKey := fmt.Sprintf("idemp:/attendance/checkin:%s:key-1", userID)
	lockKey := cacheKey + ":lock"
	payload, _ := json.Marshal(attendance.CheckInResponse{Message: "Checked In", Status: attendance.StatusPresent})

	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	rmock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	rmock.ExpectDel(lockKey).SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// the retry replays the cached response without reaching the service
	rmock.ExpectGet(cacheKey).SetVal(string(payload))

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/attendance/checkin", nil)
	req2.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"status":"present"`)
	assert.Equal(t, 1, calls)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_CheckOut_ErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkOutFn: func(ctx context.Context, uid string) (attendance.CheckOutResponse, error) {
			return attendance.CheckOutResponse{}, errTest
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/checkout", nil)
	h.CheckOut(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}
