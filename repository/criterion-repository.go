package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Criterion struct {
	Id          int     `gorm:"primaryKey"`
	Key         string  `gorm:"not null;uniqueIndex"`
	Name        string  `gorm:"not null"`
	Description string  `gorm:"not null;default:''"`
	Weight      float64 `gorm:"not null"`
	Order       int     `gorm:"column:sort_order;not null;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CriterionRepository struct {
	DB *gorm.DB
}

func NewCriterionRepository(db *gorm.DB) *CriterionRepository {
	return &CriterionRepository{DB: db}
}

func (r *CriterionRepository) GetCriterionById(criterionId int) (*Criterion, error) {
	var criterion Criterion
	result := r.DB.First(&criterion, criterionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &criterion, nil
}

// FindAll returns criteria in form/CSV column order: sort_order, then name.
func (r *CriterionRepository) FindAll() ([]*Criterion, error) {
	var criteria []*Criterion
	result := r.DB.Order("sort_order, name").Find(&criteria)
	if result.Error != nil {
		return nil, result.Error
	}
	return criteria, nil
}

// FindAllLocked takes row locks on the whole criterion set. The
// weight-change cascade runs against a stable weight snapshot this way; a
// concurrent weight edit waits for the cascade to finish.
func (r *CriterionRepository) FindAllLocked() ([]*Criterion, error) {
	var criteria []*Criterion
	result := r.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("sort_order, name").Find(&criteria)
	if result.Error != nil {
		return nil, result.Error
	}
	return criteria, nil
}

func (r *CriterionRepository) GetByOrder(order int) (*Criterion, error) {
	var criterion Criterion
	result := r.DB.Where("sort_order = ?", order).First(&criterion)
	if result.Error != nil {
		return nil, result.Error
	}
	return &criterion, nil
}

// SumWeightsExcluding returns the weight sum over all criteria except the
// given one. Pass 0 to sum over everything.
func (r *CriterionRepository) SumWeightsExcluding(criterionId int) (float64, error) {
	var sum *float64
	result := r.DB.Model(&Criterion{}).
		Where("id <> ?", criterionId).
		Select("SUM(weight)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sum criterion weights: %v", result.Error)
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *CriterionRepository) Save(criterion *Criterion) (*Criterion, error) {
	result := r.DB.Save(criterion)
	if result.Error != nil {
		return nil, result.Error
	}
	return criterion, nil
}

func (r *CriterionRepository) Delete(criterionId int) error {
	result := r.DB.Delete(&Criterion{}, criterionId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
