package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	kafkamsg "go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/keylock"
	"go-attendance/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	fleetSummaryCacheTTL = 30 * time.Second
	fleetSummaryKeyBase  = "attendance:fleet_summary:"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// CheckIn opens the caller's day record. Role gating (employee only)
	// happens at the route; the service enforces the one-record-per-day rule.
	CheckIn(ctx context.Context, userID string) (CheckInResponse, error)
	// CheckOut closes the day record exactly once. Any authenticated user
	// may close their own day, managers included.
	CheckOut(ctx context.Context, userID string) (CheckOutResponse, error)
	TodayStatus(ctx context.Context, userID string) (*RecordResponse, error)
	MyHistory(ctx context.Context, userID string) ([]RecordResponse, error)
	MySummary(ctx context.Context, userID string) (Summary, error)
	AllRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)
	EmployeeHistory(ctx context.Context, targetUserID string) ([]RecordResponse, error)
	FleetSummary(ctx context.Context) (FleetSummaryResponse, error)
	TodayFleet(ctx context.Context) ([]RecordResponse, error)
	ExportRows(ctx context.Context) ([]ExportRow, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	outbox kafkamsg.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	locks  *keylock.Map
	now    func() time.Time
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, rdb *redis.Client) Service {
	return &service{
		db:    db,
		repo:  repo,
		users: users,
		rdb:   rdb,
		sf:    &singleflight.Group{},
		locks: keylock.New(),
		now:   time.Now,
	}
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	rdb *redis.Client,
	outbox kafkamsg.OutboxRepository,
) Service {
	s := NewService(db, repo, users, rdb).(*service)
	s.outbox = outbox
	return s
}

// storeErr hides backend detail behind a generic unavailable failure.
func storeErr(err error) error {
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "attendance store unavailable", http.StatusServiceUnavailable)
}

// isUniqueViolation detects a racing insert on the (user_id, date) index.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) CheckIn(ctx context.Context, userID string) (CheckInResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return CheckInResponse{}, attendanceerrors.ErrInvalidUserID
	}

	now := s.now()
	date := now.Format(DateLayout)

	// Hold the per-(user, date) lock across find+insert; the unique index
	// backs this up when another instance races past it.
	unlock := s.locks.Lock(userID + "|" + date)
	defer unlock()

	rec := &AttendanceRecord{
		ID:          uuid.New(),
		UserID:      uid,
		Date:        date,
		CheckInTime: now,
		Status:      statusAtCheckIn(now),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByUserAndDate(ctx, userID, date)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return storeErr(err)
		}
		if existing != nil {
			return attendanceerrors.ErrAlreadyCheckedIn
		}

		if err := qtx.Create(ctx, rec); err != nil {
			if isUniqueViolation(err) {
				return attendanceerrors.ErrAlreadyCheckedIn
			}
			return storeErr(err)
		}

		return s.enqueueCheckedIn(ctx, tx, rec)
	})
	if err != nil {
		return CheckInResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("checked in",
		zap.String("record_id", rec.ID.String()),
		zap.String("date", date),
		zap.String("status", rec.Status),
	)

	return CheckInResponse{Message: "Checked In", Status: rec.Status}, nil
}

func (s *service) CheckOut(ctx context.Context, userID string) (CheckOutResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return CheckOutResponse{}, attendanceerrors.ErrInvalidUserID
	}

	now := s.now()
	date := now.Format(DateLayout)

	unlock := s.locks.Lock(userID + "|" + date)
	defer unlock()

	var totalHours float64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrNotCheckedIn
			}
			return storeErr(err)
		}
		if rec.CheckOutTime != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		totalHours = roundHours(now.Sub(rec.CheckInTime))
		rec.CheckOutTime = &now
		rec.TotalHours = &totalHours
		rec.Status = statusAtCheckOut(rec.Status, totalHours)

		if err := qtx.Update(ctx, rec); err != nil {
			return storeErr(err)
		}

		return s.enqueueCheckedOut(ctx, tx, rec)
	})
	if err != nil {
		return CheckOutResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("checked out",
		zap.String("date", date),
		zap.Float64("total_hours", totalHours),
	)

	return CheckOutResponse{Message: "Checked Out", TotalHours: totalHours}, nil
}

// TodayStatus returns nil when no record exists for today; the handler turns
// that into the "Not checked in today" message.
func (s *service) TodayStatus(ctx context.Context, userID string) (*RecordResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}

	date := s.now().Format(DateLayout)
	rec, err := s.repo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}

	resp := mapToResponse(*rec)
	return &resp, nil
}

func (s *service) MyHistory(ctx context.Context, userID string) ([]RecordResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return mapToResponses(rows), nil
}

func (s *service) MySummary(ctx context.Context, userID string) (Summary, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Summary{}, attendanceerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return Summary{}, storeErr(err)
	}

	now := s.now()
	return MonthlySummary(rows, now.Year(), now.Month()), nil
}

func (s *service) AllRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindJoined(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}

	rows = FilterByEmployeeID(rows, filter.EmployeeID)
	return mapToResponses(rows), nil
}

func (s *service) EmployeeHistory(ctx context.Context, targetUserID string) ([]RecordResponse, error) {
	if _, err := uuid.Parse(targetUserID); err != nil {
		return nil, attendanceerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, targetUserID)
	if err != nil {
		return nil, storeErr(err)
	}
	return mapToResponses(rows), nil
}

func (s *service) FleetSummary(ctx context.Context) (FleetSummaryResponse, error) {
	date := s.now().Format(DateLayout)
	cacheKey := fleetSummaryKeyBase + date

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached FleetSummaryResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		totalEmployees, err := s.users.CountByRole(ctx, user.RoleEmployee)
		if err != nil {
			return nil, storeErr(err)
		}

		rows, err := s.repo.FindByDate(ctx, date)
		if err != nil {
			return nil, storeErr(err)
		}

		counts := DailyFleetCounts(rows)
		resp := FleetSummaryResponse{
			TotalEmployees: totalEmployees,
			PresentToday:   counts.PresentToday,
			LateToday:      counts.LateToday,
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, fleetSummaryCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return FleetSummaryResponse{}, err
	}

	return v.(FleetSummaryResponse), nil
}

func (s *service) TodayFleet(ctx context.Context) ([]RecordResponse, error) {
	date := s.now().Format(DateLayout)
	rows, err := s.repo.FindJoinedByDate(ctx, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return mapToResponses(rows), nil
}

func (s *service) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.repo.FindJoined(ctx, RecordFilter{})
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]ExportRow, len(rows))
	for i, r := range rows {
		row := ExportRow{
			Date:   r.Date,
			Status: r.Status,
			Hours:  r.TotalHours,
		}
		if r.User != nil {
			row.Name = r.User.Name
		}
		out[i] = row
	}
	return out, nil
}

func validateFilter(filter RecordFilter) error {
	if filter.Date != "" {
		if _, err := time.Parse(DateLayout, filter.Date); err != nil {
			return attendanceerrors.ErrInvalidDateFormat
		}
	}
	switch filter.Status {
	case "", StatusPresent, StatusLate, StatusHalfDay:
	default:
		return attendanceerrors.ErrInvalidStatusFilter
	}
	return nil
}

func (s *service) enqueueCheckedIn(ctx context.Context, tx *gorm.DB, rec *AttendanceRecord) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.AttendanceCheckedInEvent{
		RecordID:    rec.ID.String(),
		UserID:      rec.UserID.String(),
		Date:        rec.Date,
		Status:      rec.Status,
		CheckInTime: rec.CheckInTime,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafkamsg.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.AttendanceAggregateType,
		AggregateID:   rec.ID.String(),
		EventType:     events.CheckedInEventType,
		Topic:         events.CheckedInTopic,
		Payload:       payload,
		Status:        kafkamsg.OutboxStatusPending,
	})
}

func (s *service) enqueueCheckedOut(ctx context.Context, tx *gorm.DB, rec *AttendanceRecord) error {
	if s.outbox == nil {
		return nil
	}

	var hours float64
	if rec.TotalHours != nil {
		hours = *rec.TotalHours
	}

	payload, err := json.Marshal(events.AttendanceCheckedOutEvent{
		RecordID:     rec.ID.String(),
		UserID:       rec.UserID.String(),
		Date:         rec.Date,
		Status:       rec.Status,
		TotalHours:   hours,
		CheckOutTime: *rec.CheckOutTime,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafkamsg.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.AttendanceAggregateType,
		AggregateID:   rec.ID.String(),
		EventType:     events.CheckedOutEventType,
		Topic:         events.CheckedOutTopic,
		Payload:       payload,
		Status:        kafkamsg.OutboxStatusPending,
	})
}
