package employee

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrpay/internal/apperr"
)

type employeeRow struct {
	ID                 int    `gorm:"primaryKey;autoIncrement:false"`
	Seq                int    `gorm:"column:seq;not null;index"`
	Username           string `gorm:"column:username;uniqueIndex;not null"`
	Name               string `gorm:"column:name"`
	DateOfBirth        string `gorm:"column:dob"`
	NationalID         string `gorm:"column:national_id"`
	JobTitle           string `gorm:"column:job_title"`
	ScalePoint         int    `gorm:"column:scale_point"`
	PendingPromotion   bool   `gorm:"column:pending_promotion"`
	PreviousJobTitle   string `gorm:"column:previous_job_title"`
	PreviousScalePoint int    `gorm:"column:previous_scale_point"`
	YearsAtTopOfScale  int    `gorm:"column:years_at_top_of_scale"`
}

func (employeeRow) TableName() string {
	return "employees"
}

type statusRow struct {
	Username string `gorm:"primaryKey"`
	Kind     string `gorm:"column:employment_kind;not null"`
}

func (statusRow) TableName() string {
	return "employee_statuses"
}

// Migrate creates the tables used by SQLStore and SQLStatusStore.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&employeeRow{}, &statusRow{})
}

// SQLStore keeps employee records in a relational table. Storage order is
// preserved through the seq column.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListAll(ctx context.Context) ([]Employee, error) {
	var rows []employeeRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, apperr.Storage("list", "employees", err)
	}
	out := make([]Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEmployee())
	}
	return out, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int) (Employee, error) {
	var row employeeRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Employee{}, apperr.NotFound("employee", strconv.Itoa(id))
	}
	if err != nil {
		return Employee{}, apperr.Storage("find", "employees", err)
	}
	return row.toEmployee(), nil
}

func (s *SQLStore) FindByUsername(ctx context.Context, username string) (Employee, error) {
	var row employeeRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Employee{}, apperr.NotFound("employee", username)
	}
	if err != nil {
		return Employee{}, apperr.Storage("find", "employees", err)
	}
	return row.toEmployee(), nil
}

// ReplaceAll swaps the whole table inside one transaction.
func (s *SQLStore) ReplaceAll(ctx context.Context, records []Employee) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&employeeRow{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]employeeRow, 0, len(records))
		for i, e := range records {
			rows = append(rows, rowFromEmployee(i, e))
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	return apperr.Storage("replace", "employees", err)
}

func rowFromEmployee(seq int, e Employee) employeeRow {
	return employeeRow{
		ID:                 e.ID,
		Seq:                seq,
		Username:           e.Username,
		Name:               e.Name,
		DateOfBirth:        e.DateOfBirth,
		NationalID:         e.NationalID,
		JobTitle:           e.JobTitle,
		ScalePoint:         e.ScalePoint,
		PendingPromotion:   e.PendingPromotion,
		PreviousJobTitle:   e.PreviousJobTitle,
		PreviousScalePoint: e.PreviousScalePoint,
		YearsAtTopOfScale:  e.YearsAtTopOfScale,
	}
}

func (r employeeRow) toEmployee() Employee {
	return Employee{
		ID:                 r.ID,
		Username:           r.Username,
		Name:               r.Name,
		DateOfBirth:        r.DateOfBirth,
		NationalID:         r.NationalID,
		JobTitle:           r.JobTitle,
		ScalePoint:         r.ScalePoint,
		PendingPromotion:   r.PendingPromotion,
		PreviousJobTitle:   r.PreviousJobTitle,
		PreviousScalePoint: r.PreviousScalePoint,
		YearsAtTopOfScale:  r.YearsAtTopOfScale,
	}
}

type SQLStatusStore struct {
	db *gorm.DB
}

func NewSQLStatusStore(db *gorm.DB) *SQLStatusStore {
	return &SQLStatusStore{db: db}
}

func (s *SQLStatusStore) All(ctx context.Context) (map[string]Kind, error) {
	var rows []statusRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, apperr.Storage("list", "employee_statuses", err)
	}
	out := make(map[string]Kind, len(rows))
	for _, row := range rows {
		if kind, err := ParseKind(row.Kind); err == nil {
			out[row.Username] = kind
		}
	}
	return out, nil
}

func (s *SQLStatusStore) Kind(ctx context.Context, username string) (Kind, error) {
	var row statusRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.NotFound("employment status", username)
	}
	if err != nil {
		return "", apperr.Storage("find", "employee_statuses", err)
	}
	kind, err := ParseKind(row.Kind)
	if err != nil {
		return "", apperr.NotFound("employment status", username)
	}
	return kind, nil
}

func (s *SQLStatusStore) Set(ctx context.Context, username string, kind Kind) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"employment_kind"}),
	}).Create(&statusRow{Username: username, Kind: string(kind)}).Error
	return apperr.Storage("upsert", "employee_statuses", err)
}
