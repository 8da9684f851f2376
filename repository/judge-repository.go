package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Judge struct {
	Id           int       `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Organization string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	Phone        string    `gorm:"not null;default:''"`
	Token        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

type JudgeRepository struct {
	DB *gorm.DB
}

func NewJudgeRepository(db *gorm.DB) *JudgeRepository {
	return &JudgeRepository{DB: db}
}

func (r *JudgeRepository) GetJudgeById(judgeId int) (*Judge, error) {
	var judge Judge
	result := r.DB.First(&judge, judgeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &judge, nil
}

// GetJudgeByToken resolves an opaque bearer token to an active judge.
func (r *JudgeRepository) GetJudgeByToken(token uuid.UUID) (*Judge, error) {
	var judge Judge
	result := r.DB.Where("token = ? AND active = ?", token, true).First(&judge)
	if result.Error != nil {
		return nil, result.Error
	}
	return &judge, nil
}

func (r *JudgeRepository) FindAll() ([]*Judge, error) {
	var judges []*Judge
	result := r.DB.Order("name").Find(&judges)
	if result.Error != nil {
		return nil, result.Error
	}
	return judges, nil
}

func (r *JudgeRepository) Save(judge *Judge) (*Judge, error) {
	result := r.DB.Save(judge)
	if result.Error != nil {
		return nil, result.Error
	}
	return judge, nil
}

func (r *JudgeRepository) Delete(judgeId int) error {
	result := r.DB.Delete(&Judge{}, judgeId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
