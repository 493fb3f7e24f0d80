package dashboard

import (
	"context"
	"net/http"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/user"

	"github.com/google/uuid"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error)
	ManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)
}

type service struct {
	records attendance.Repository
	users   user.Repository
}

func NewService(records attendance.Repository, users user.Repository) Service {
	return &service{records: records, users: users}
}

func (s *service) EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return EmployeeDashboardResponse{}, attendanceerrors.ErrInvalidUserID
	}

	rows, err := s.records.FindAllByUser(ctx, userID)
	if err != nil {
		return EmployeeDashboardResponse{}, storeErr(err)
	}

	totals := attendance.Lifetime(rows)
	return EmployeeDashboardResponse{
		TotalDays:  totals.TotalDays,
		TotalHours: totals.TotalHours,
	}, nil
}

func (s *service) ManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error) {
	totalEmployees, err := s.users.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return ManagerDashboardResponse{}, storeErr(err)
	}

	totalAttendance, err := s.records.CountAll(ctx)
	if err != nil {
		return ManagerDashboardResponse{}, storeErr(err)
	}

	return ManagerDashboardResponse{
		TotalEmployees:  totalEmployees,
		TotalAttendance: totalAttendance,
	}, nil
}

func storeErr(err error) error {
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "attendance store unavailable", http.StatusServiceUnavailable)
}
