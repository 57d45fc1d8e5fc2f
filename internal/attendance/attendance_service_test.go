package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"go-attendance/internal/adjustment"
	"go-attendance/internal/employee"
	"go-attendance/internal/events"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/punch"
	"go-attendance/internal/rule"
	"go-attendance/internal/shared/apperror"
)

type fakeRepo struct {
	deletedCodes []string
	deletedFrom  time.Time
	deletedTo    time.Time
	inserted     []AttendanceRecord
	filteredFn   func(ctx context.Context, f GetAttendanceFilter, from, to time.Time) ([]AttendanceRecord, int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) DeleteRange(ctx context.Context, codes []string, from, to time.Time) error {
	f.deletedCodes = codes
	f.deletedFrom = from
	f.deletedTo = to
	return nil
}
func (f *fakeRepo) CreateBatch(ctx context.Context, rows []AttendanceRecord) error {
	f.inserted = append(f.inserted, rows...)
	return nil
}
func (f *fakeRepo) FindFiltered(ctx context.Context, fl GetAttendanceFilter, from, to time.Time) ([]AttendanceRecord, int64, error) {
	return f.filteredFn(ctx, fl, from, to)
}
func (f *fakeRepo) FindByRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	return nil, nil
}

type fakeEmployeeRepo struct{ rows []employee.Employee }

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.rows, nil
}
func (f *fakeEmployeeRepo) FindByCode(ctx context.Context, code string) (*employee.Employee, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, code string) error { return nil }

type fakePunchRepo struct{ rows []punch.Punch }

func (f *fakePunchRepo) WithTx(tx *sql.Tx) punch.Repository { return f }
func (f *fakePunchRepo) CreateBatch(ctx context.Context, punches []punch.Punch) (int64, error) {
	return 0, nil
}
func (f *fakePunchRepo) FindByRange(ctx context.Context, from, to time.Time) ([]punch.Punch, error) {
	return f.rows, nil
}
func (f *fakePunchRepo) FindByEmployeeAndRange(ctx context.Context, code string, from, to time.Time) ([]punch.Punch, error) {
	return nil, nil
}

type fakeRuleRepo struct{}

func (f *fakeRuleRepo) WithTx(tx *sql.Tx) rule.Repository { return f }
func (f *fakeRuleRepo) Create(ctx context.Context, r *rule.SpecialRule) error { return nil }
func (f *fakeRuleRepo) FindAll(ctx context.Context) ([]rule.SpecialRule, error) {
	return nil, nil
}
func (f *fakeRuleRepo) FindOverlappingRange(ctx context.Context, from, to time.Time) ([]rule.SpecialRule, error) {
	return nil, nil
}
func (f *fakeRuleRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeAdjustmentRepo struct{}

func (f *fakeAdjustmentRepo) WithTx(tx *sql.Tx) adjustment.Repository { return f }
func (f *fakeAdjustmentRepo) Create(ctx context.Context, a *adjustment.Adjustment) error {
	return nil
}
func (f *fakeAdjustmentRepo) FindByRange(ctx context.Context, from, to time.Time) ([]adjustment.Adjustment, error) {
	return nil, nil
}
func (f *fakeAdjustmentRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeLeaveRepo struct{}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leave.Repository { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error { return nil }
func (f *fakeLeaveRepo) FindOverlappingRange(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeLeaveRepo) CreateHoliday(ctx context.Context, h *leave.OfficialHoliday) error {
	return nil
}
func (f *fakeLeaveRepo) FindHolidaysInRange(ctx context.Context, from, to time.Time) ([]leave.OfficialHoliday, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) DeleteHoliday(ctx context.Context, id string) error { return nil }

type fakeOutbox struct{ events []kafka.OutboxEvent }

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func newTestService(t *testing.T, repo *fakeRepo, emps *fakeEmployeeRepo, punches *fakePunchRepo, outbox *fakeOutbox) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(
		db, repo,
		emps, punches, &fakeRuleRepo{}, &fakeAdjustmentRepo{}, &fakeLeaveRepo{},
		outbox, nil,
	)
	return svc, mock, func() { db.Close() }
}

func TestService_Process_NormalDay(t *testing.T) {
	repo := &fakeRepo{}
	emps := &fakeEmployeeRepo{rows: []employee.Employee{
		{Code: "31", Name: "أحمد", ShiftStart: "09:00"},
	}}
	// Local 08:55 and 17:05 at UTC+2.
	punches := &fakePunchRepo{rows: []punch.Punch{
		{EmployeeCode: "31", PunchDatetime: time.Date(2025, 3, 3, 6, 55, 0, 0, time.UTC)},
		{EmployeeCode: "31", PunchDatetime: time.Date(2025, 3, 3, 15, 5, 0, 0, time.UTC)},
	}}
	outbox := &fakeOutbox{}

	svc, mock, closeDB := newTestService(t, repo, emps, punches, outbox)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Process(context.Background(), ProcessRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, 1, resp.EmployeeCount)

	assert.Len(t, repo.inserted, 1)
	rec := repo.inserted[0]
	assert.Equal(t, "31", rec.EmployeeCode)
	assert.Equal(t, "Present", rec.Status)
	assert.InDelta(t, 8.17, rec.TotalHours, 0.001)
	assert.Equal(t, []string{"31"}, repo.deletedCodes)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, events.AttendanceRangeProcessedTopic, outbox.events[0].Topic)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.events[0].Status)

	var event events.AttendanceRangeProcessedEvent
	assert.NoError(t, json.Unmarshal(outbox.events[0].Payload, &event))
	assert.Equal(t, "attendance.range_processed", event.EventType)
	assert.Equal(t, 1, event.ProcessedCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Process_EmployeeSelection(t *testing.T) {
	repo := &fakeRepo{}
	emps := &fakeEmployeeRepo{rows: []employee.Employee{
		{Code: "31", Name: "أحمد"},
		{Code: "77", Name: "منى"},
	}}
	punches := &fakePunchRepo{}
	outbox := &fakeOutbox{}

	svc, mock, closeDB := newTestService(t, repo, emps, punches, outbox)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit()

	// Leading zeros in the request still select employee 31.
	resp, err := svc.Process(context.Background(), ProcessRequest{
		StartDate:     "2025-03-03",
		EndDate:       "2025-03-04",
		EmployeeCodes: []string{"031"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.EmployeeCount)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Equal(t, []string{"31"}, repo.deletedCodes)

	// No punches in the range: both days come back Absent.
	for _, rec := range repo.inserted {
		assert.Equal(t, "Absent", rec.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Process_InvalidRange(t *testing.T) {
	repo := &fakeRepo{}
	svc, _, closeDB := newTestService(t, repo, &fakeEmployeeRepo{}, &fakePunchRepo{}, &fakeOutbox{})
	defer closeDB()

	_, err := svc.Process(context.Background(), ProcessRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-03",
	})
	assert.Error(t, err)

	_, err = svc.Process(context.Background(), ProcessRequest{
		StartDate: "not-a-date",
		EndDate:   "2025-03-03",
	})
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
}

func TestService_GetAll_MapsRows(t *testing.T) {
	checkIn := time.Date(2025, 3, 3, 6, 55, 0, 0, time.UTC)
	repo := &fakeRepo{
		filteredFn: func(ctx context.Context, f GetAttendanceFilter, from, to time.Time) ([]AttendanceRecord, int64, error) {
			return []AttendanceRecord{{
				EmployeeCode: "31",
				Date:         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
				CheckIn:      &checkIn,
				Status:       "Present",
				TotalHours:   8.17,
			}}, 1, nil
		},
	}
	svc, _, closeDB := newTestService(t, repo, &fakeEmployeeRepo{}, &fakePunchRepo{}, &fakeOutbox{})
	defer closeDB()

	rows, total, err := svc.GetAll(context.Background(), GetAttendanceFilter{
		From: "2025-03-01",
		To:   "2025-03-31",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, rows, 1)
	assert.Equal(t, "2025-03-03", rows[0].Date)
	assert.NotNil(t, rows[0].CheckIn)
	assert.Equal(t, json.RawMessage("[]"), rows[0].Penalties)
}
