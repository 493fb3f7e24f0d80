package attendance

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	Update(ctx context.Context, rec *AttendanceRecord) error
	FindByUserAndDate(ctx context.Context, userID, date string) (*AttendanceRecord, error)
	FindAllByUser(ctx context.Context, userID string) ([]AttendanceRecord, error)
	FindByDate(ctx context.Context, date string) ([]AttendanceRecord, error)
	FindJoined(ctx context.Context, filter RecordFilter) ([]AttendanceRecord, error)
	FindJoinedByDate(ctx context.Context, date string) ([]AttendanceRecord, error)
	CountAll(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID, date string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDate(ctx context.Context, date string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindJoined applies the store-side filter predicates and resolves the user
// reference. The employeeId dimension is left to the post-join stage.
func (r *repository) FindJoined(ctx context.Context, filter RecordFilter) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	q := r.db.WithContext(ctx).Preload("User")
	for field, value := range filter.storeConditions() {
		q = q.Where(field+" = ?", value)
	}
	err := q.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindJoinedByDate(ctx context.Context, date string) ([]AttendanceRecord, error) {
	return r.FindJoined(ctx, RecordFilter{Date: date})
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AttendanceRecord{}).Count(&count).Error
	return count, err
}
