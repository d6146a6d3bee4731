package repository

import (
	"fabra/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *models.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByGoogleID(googleID string) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.Where("google_id = ?", googleID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List() ([]models.Employee, error) {
	var list []models.Employee
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

// ListIDsByRole returns the IDs of all employees holding one of the given roles.
// Used for notification fan-out (e.g. every MANAGER on rush-order creation).
func (r *EmployeeRepository) ListIDsByRole(roles ...string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Employee{}).Where("role IN ?", roles).Pluck("id", &ids).Error
	return ids, err
}

func (r *EmployeeRepository) Update(e *models.Employee) error {
	return r.db.Save(e).Error
}

func (r *EmployeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
