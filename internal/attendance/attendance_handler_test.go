package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-attendance/internal/attendance"
	"go-attendance/internal/shared/apperror"
)

type fakeService struct {
	processFn func(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error)
	getAllFn  func(ctx context.Context, f attendance.GetAttendanceFilter) ([]attendance.RecordResponse, int64, error)
}

func (f *fakeService) Process(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error) {
	return f.processFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context, fl attendance.GetAttendanceFilter) ([]attendance.RecordResponse, int64, error) {
	return f.getAllFn(ctx, fl)
}

func TestHandler_ProcessAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		processFn: func(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error) {
			assert.Equal(t, "2025-03-01", req.StartDate)
			assert.Equal(t, "2025-03-31", req.EndDate)
			return attendance.ProcessResponse{
				StartDate:      req.StartDate,
				EndDate:        req.EndDate,
				ProcessedCount: 62,
				EmployeeCount:  2,
			}, nil
		},
		getAllFn: func(ctx context.Context, f attendance.GetAttendanceFilter) ([]attendance.RecordResponse, int64, error) {
			return []attendance.RecordResponse{{EmployeeCode: "31", Date: "2025-03-03"}}, 1, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/process",
		strings.NewReader(`{"start_date":"2025-03-01","end_date":"2025-03-31"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Process(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processed_count":62`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendance?from=2025-03-01&to=2025-03-31", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_Process_LockedConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		processFn: func(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error) {
			return attendance.ProcessResponse{}, apperror.ErrProcessingLocked
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/process",
		strings.NewReader(`{"start_date":"2025-03-01","end_date":"2025-03-31"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Process(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING_LOCKED")
}

func TestHandler_Process_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/process",
		strings.NewReader(`{"start_date":"2025-03-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Process(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
