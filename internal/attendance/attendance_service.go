package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-attendance/internal/adjustment"
	"go-attendance/internal/employee"
	"go-attendance/internal/engine"
	"go-attendance/internal/events"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/punch"
	"go-attendance/internal/rule"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
)

const (
	processLockKey = "attendance:process"
	processLockTTL = 5 * time.Minute
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error)
	GetAll(ctx context.Context, f GetAttendanceFilter) ([]RecordResponse, int64, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	punches     punch.Repository
	rules       rule.Repository
	adjustments adjustment.Repository
	leaves      leave.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	punches punch.Repository,
	rules rule.Repository,
	adjustments adjustment.Repository,
	leaves leave.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		punches:     punches,
		rules:       rules,
		adjustments: adjustments,
		leaves:      leaves,
		outbox:      outbox,
		rdb:         rdb,
		logger:      zap.L().Named("attendance.service"),
	}
}

// Process recomputes the attendance records for a date range and atomically
// replaces whatever was stored for it before. Runs are serialized through a
// redis lock: a second submit while one is in flight is rejected, never queued.
func (s *service) Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ProcessResponse{}, apperror.InvalidField("Start Date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return ProcessResponse{}, apperror.InvalidField("End Date")
	}
	if end.Before(start) {
		return ProcessResponse{}, apperror.InvalidField("End Date")
	}

	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, processLockKey, rid, processLockTTL).Result()
		if err != nil {
			s.logger.Error("acquire processing lock failed", zap.Error(err))
			return ProcessResponse{}, err
		}
		if !acquired {
			return ProcessResponse{}, apperror.ErrProcessingLocked
		}
		// TTL backstops a crashed run; normal completion releases early.
		defer s.rdb.Del(context.WithoutCancel(ctx), processLockKey)
	}

	s.logger.Info("processing run started",
		zap.String("request_id", rid),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("requested_codes", len(req.EmployeeCodes)),
	)

	input, employees, err := s.loadSnapshot(ctx, start, end, req)
	if err != nil {
		return ProcessResponse{}, err
	}

	records := engine.Process(input)

	rows := make([]AttendanceRecord, 0, len(records))
	for _, rec := range records {
		row, err := FromEngine(rec)
		if err != nil {
			return ProcessResponse{}, err
		}
		rows = append(rows, row)
	}

	codes := make([]string, len(employees))
	for i, e := range employees {
		codes[i] = e.Code
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteRange(ctx, codes, start, end); err != nil {
		s.logger.Error("delete prior records failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	if err := qtx.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("insert records failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	if s.outbox != nil {
		event := events.AttendanceRangeProcessedEvent{
			EventType:      "attendance.range_processed",
			RequestID:      rid,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			ProcessedCount: len(rows),
			EmployeeCount:  len(employees),
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ProcessResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance_range",
			AggregateID:   req.StartDate + ":" + req.EndDate,
			EventType:     event.EventType,
			Topic:         events.AttendanceRangeProcessedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("outbox persist failed", zap.Error(err))
			return ProcessResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ProcessResponse{}, err
	}

	s.logger.Info("processing run finished",
		zap.String("request_id", rid),
		zap.Int("processed_count", len(rows)),
		zap.Int("employee_count", len(employees)),
	)

	return ProcessResponse{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ProcessedCount: len(rows),
		EmployeeCount:  len(employees),
	}, nil
}

// loadSnapshot reads everything one run consumes. Punches extend two days past
// the range end so a post-midnight checkout of the last day is still seen, and
// rules extend one day so the next shift start is resolvable for overtime caps.
func (s *service) loadSnapshot(
	ctx context.Context,
	start, end time.Time,
	req ProcessRequest,
) (engine.Input, []employee.Employee, error) {
	all, err := s.employees.FindAll(ctx)
	if err != nil {
		return engine.Input{}, nil, err
	}

	selected := all
	if len(req.EmployeeCodes) > 0 {
		wanted := make(map[string]bool, len(req.EmployeeCodes))
		for _, c := range req.EmployeeCodes {
			wanted[engine.NormalizeCode(c)] = true
		}
		selected = selected[:0:0]
		for _, e := range all {
			if wanted[engine.NormalizeCode(e.Code)] {
				selected = append(selected, e)
			}
		}
	}

	punchRows, err := s.punches.FindByRange(ctx, start, end.AddDate(0, 0, 2))
	if err != nil {
		return engine.Input{}, nil, err
	}
	ruleRows, err := s.rules.FindOverlappingRange(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return engine.Input{}, nil, err
	}
	adjRows, err := s.adjustments.FindByRange(ctx, start, end)
	if err != nil {
		return engine.Input{}, nil, err
	}
	leaveRows, err := s.leaves.FindOverlappingRange(ctx, start, end)
	if err != nil {
		return engine.Input{}, nil, err
	}
	holidayRows, err := s.leaves.FindHolidaysInRange(ctx, start, end)
	if err != nil {
		return engine.Input{}, nil, err
	}

	input := engine.Input{
		StartDate:     start,
		EndDate:       end,
		OffsetMinutes: req.OffsetMinutes,
	}
	for _, e := range selected {
		input.Employees = append(input.Employees, e.ToEngine())
	}
	for _, p := range punchRows {
		input.Punches = append(input.Punches, p.ToEngine())
	}
	input.Rules = rule.ToEngineRules(ruleRows, s.logger)
	for _, a := range adjRows {
		input.Adjustments = append(input.Adjustments, a.ToEngine())
	}
	for _, l := range leaveRows {
		input.Leaves = append(input.Leaves, l.ToEngine())
	}
	for _, h := range holidayRows {
		input.Holidays = append(input.Holidays, h.ToEngine())
	}

	return input, selected, nil
}

func (s *service) GetAll(ctx context.Context, f GetAttendanceFilter) ([]RecordResponse, int64, error) {
	from, err := time.Parse("2006-01-02", f.From)
	if err != nil {
		return nil, 0, apperror.InvalidField("From")
	}
	to, err := time.Parse("2006-01-02", f.To)
	if err != nil {
		return nil, 0, apperror.InvalidField("To")
	}

	rows, total, err := s.repo.FindFiltered(ctx, f, from, to)
	if err != nil {
		return nil, 0, err
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

func mapToResponse(a AttendanceRecord) RecordResponse {
	resp := RecordResponse{
		EmployeeCode:  a.EmployeeCode,
		Date:          a.Date.Format("2006-01-02"),
		TotalHours:    a.TotalHours,
		Status:        a.Status,
		OvertimeHours: a.OvertimeHours,
		Penalties:     a.Penalties,
		Notes:         a.Notes,
		MissionStart:  a.MissionStart,
		MissionEnd:    a.MissionEnd,

		HalfDayExcused:          a.HalfDayExcused,
		IsOfficialHoliday:       a.IsOfficialHoliday,
		WorkedOnOfficialHoliday: a.WorkedOnOfficialHoliday,

		CompDayCredit:         a.CompDayCredit,
		LeaveDeductionDays:    a.LeaveDeductionDays,
		ExcusedAbsenceDays:    a.ExcusedAbsenceDays,
		TerminationPeriodDays: a.TerminationPeriodDays,
		CompDaysTotal:         a.CompDaysTotal,
	}
	if len(resp.Penalties) == 0 {
		resp.Penalties = json.RawMessage("[]")
	}
	if a.CheckIn != nil {
		v := a.CheckIn.UTC().Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
