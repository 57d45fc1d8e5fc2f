package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/engine"
	"go-attendance/internal/shared/apperror"
)

const (
	cacheKeyPrefix = "report:attendance:"
	cacheTTL       = 10 * time.Minute
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, q GetReportQuery) (Table, error)
	Summary(ctx context.Context, q GetReportQuery) (Table, error)
}

type service struct {
	records   attendance.Repository
	employees employee.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(records attendance.Repository, employees employee.Repository, rdb *redis.Client) Service {
	return &service{
		records:   records,
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    zap.L().Named("report.service"),
	}
}

// InvalidateCache drops every cached report table. Called by the consumer when
// a range is reprocessed; tables rebuild lazily on the next request.
func InvalidateCache(ctx context.Context, rdb *redis.Client) error {
	iter := rdb.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *service) Detail(ctx context.Context, q GetReportQuery) (Table, error) {
	return s.build(ctx, "detail", q, s.buildDetail)
}

func (s *service) Summary(ctx context.Context, q GetReportQuery) (Table, error) {
	return s.build(ctx, "summary", q, s.buildSummary)
}

// build serves one table through the cache; concurrent identical requests
// collapse into a single database read via singleflight.
func (s *service) build(
	ctx context.Context,
	kind string,
	q GetReportQuery,
	fn func(context.Context, time.Time, time.Time) (Table, error),
) (Table, error) {
	from, err := time.Parse("2006-01-02", q.From)
	if err != nil {
		return Table{}, apperror.InvalidField("From")
	}
	to, err := time.Parse("2006-01-02", q.To)
	if err != nil {
		return Table{}, apperror.InvalidField("To")
	}

	key := fmt.Sprintf("%s%s:%s:%s", cacheKeyPrefix, kind, q.From, q.To)

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached Table
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		table, err := fn(ctx, from, to)
		if err != nil {
			return Table{}, err
		}
		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(table); marshalErr == nil {
				if err := s.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache report table failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return table, nil
	})
	if err != nil {
		return Table{}, err
	}
	return v.(Table), nil
}

func (s *service) buildDetail(ctx context.Context, from, to time.Time) (Table, error) {
	rows, roster, err := s.load(ctx, from, to)
	if err != nil {
		return Table{}, err
	}

	table := Table{Headers: detailHeaders, Rows: [][]string{}}
	for _, rec := range rows {
		emp := roster[engine.NormalizeCode(rec.EmployeeCode)]
		table.Rows = append(table.Rows, []string{
			rec.EmployeeCode,
			emp.Name,
			emp.Sector,
			emp.Department,
			rec.Date.Format("2006-01-02"),
			formatClock(rec.CheckIn),
			formatClock(rec.CheckOut),
			formatHours(rec.TotalHours),
			rec.Status,
			formatHours(rec.OvertimeHours),
			formatPenalties(rec.Penalties),
			rec.Notes,
		})
	}
	return table, nil
}

func (s *service) buildSummary(ctx context.Context, from, to time.Time) (Table, error) {
	rows, roster, err := s.load(ctx, from, to)
	if err != nil {
		return Table{}, err
	}

	type totals struct {
		code        string
		present     int
		late        int
		absent      int
		penaltyDays float64
		overtime    float64
		compDays    float64
		deduction   float64
		excused     float64
	}

	var order []string
	acc := make(map[string]*totals)
	for _, rec := range rows {
		key := engine.NormalizeCode(rec.EmployeeCode)
		t, ok := acc[key]
		if !ok {
			t = &totals{code: rec.EmployeeCode}
			acc[key] = t
			order = append(order, key)
		}

		switch rec.Status {
		case engine.StatusPresent, engine.StatusFridayAttended, engine.StatusExcused:
			t.present++
		case engine.StatusLate:
			t.present++
			t.late++
		case engine.StatusAbsent:
			t.absent++
		}
		for _, p := range decodePenalties(rec.Penalties) {
			t.penaltyDays += p.Value
		}
		t.overtime += rec.OvertimeHours
		t.compDays += rec.CompDaysTotal
		t.deduction += rec.LeaveDeductionDays
		t.excused += rec.ExcusedAbsenceDays
	}

	table := Table{Headers: summaryHeaders, Rows: [][]string{}}
	for _, key := range order {
		t := acc[key]
		emp := roster[key]
		table.Rows = append(table.Rows, []string{
			t.code,
			emp.Name,
			strconv.Itoa(t.present),
			strconv.Itoa(t.late),
			strconv.Itoa(t.absent),
			formatHours(t.penaltyDays),
			formatHours(t.overtime),
			formatHours(t.compDays),
			formatHours(t.deduction),
			formatHours(t.excused),
		})
	}
	return table, nil
}

func (s *service) load(ctx context.Context, from, to time.Time) ([]attendance.AttendanceRecord, map[string]employee.Employee, error) {
	rows, err := s.records.FindByRange(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	emps, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	roster := make(map[string]employee.Employee, len(emps))
	for _, e := range emps {
		roster[engine.NormalizeCode(e.Code)] = e
	}
	return rows, roster, nil
}

func decodePenalties(raw json.RawMessage) []attendance.PenaltyEntry {
	if len(raw) == 0 {
		return nil
	}
	var out []attendance.PenaltyEntry
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func formatPenalties(raw json.RawMessage) string {
	entries := decodePenalties(raw)
	if len(entries) == 0 {
		return ""
	}
	out := ""
	for i, p := range entries {
		if i > 0 {
			out += " | "
		}
		out += fmt.Sprintf("%s %s", p.Type, formatHours(p.Value))
	}
	return out
}

// formatClock renders the stored absolute instant as a local wall clock at
// the default processing offset.
func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Add(-time.Duration(engine.DefaultOffsetMinutes) * time.Minute).Format("15:04")
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
