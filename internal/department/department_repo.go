package department

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-timeoff/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Department, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Department, error)
	ExistsInCompany(ctx context.Context, companyID, id string) (bool, error)
	SetManager(ctx context.Context, companyID, id string, managerID uuid.UUID) error
	AddSupervisor(ctx context.Context, s *DepartmentSupervisor) error
	// SupervisedDepartmentIDs returns departments the employee manages or
	// supervises as a secondary supervisor.
	SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error)
	// SupervisorIDs is the inverse: the manager and secondary supervisors
	// of one department.
	SupervisorIDs(ctx context.Context, departmentID string) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, d *Department) error {
	if r.tx != nil {
		query := `
			INSERT INTO departments (id, name, company_id, manager_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`
		_, err := r.tx.ExecContext(ctx, query, d.ID, d.Name, d.CompanyID, d.ManagerID)
		return err
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) ExistsInCompany(ctx context.Context, companyID, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Department, error) {
	var departments []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *repository) SetManager(ctx context.Context, companyID, id string, managerID uuid.UUID) error {
	if r.tx != nil {
		query := `UPDATE departments SET manager_id = $1, updated_at = now() WHERE id = $2 AND company_id = $3`
		_, err := r.tx.ExecContext(ctx, query, managerID, id, companyID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("manager_id", managerID).Error
}

func (r *repository) AddSupervisor(ctx context.Context, s *DepartmentSupervisor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) SupervisedDepartmentIDs(ctx context.Context, employeeID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Distinct("departments.id").
		Joins("LEFT JOIN department_supervisors ds ON ds.department_id = departments.id").
		Where("departments.manager_id = ? OR ds.employee_id = ?", employeeID, employeeID).
		Pluck("departments.id", &ids).Error
	return ids, err
}

func (r *repository) SupervisorIDs(ctx context.Context, departmentID string) ([]uuid.UUID, error) {
	var d Department
	if err := r.db.WithContext(ctx).First(&d, "id = ?", departmentID).Error; err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&DepartmentSupervisor{}).
		Where("department_id = ?", departmentID).
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}

	if d.ManagerID != nil {
		for _, id := range ids {
			if id == *d.ManagerID {
				return ids, nil
			}
		}
		ids = append(ids, *d.ManagerID)
	}
	return ids, nil
}
