package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Team identity is the externally assigned team number, stable across
// CSV imports.
type Team struct {
	NumEquipe string `gorm:"primaryKey;column:num_equipe"`
	NomEquipe string `gorm:"not null;column:nom_equipe"`
}

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) GetTeamByNum(numEquipe string) (*Team, error) {
	var team Team
	result := r.DB.First(&team, "num_equipe = ?", numEquipe)
	if result.Error != nil {
		return nil, result.Error
	}
	return &team, nil
}

func (r *TeamRepository) FindAll() ([]*Team, error) {
	var teams []*Team
	result := r.DB.Order("nom_equipe").Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

func (r *TeamRepository) Save(team *Team) (*Team, error) {
	result := r.DB.Save(team)
	if result.Error != nil {
		return nil, result.Error
	}
	return team, nil
}

// CreateIfAbsent inserts the team unless its number already exists.
// Returns true when a row was actually created.
func (r *TeamRepository) CreateIfAbsent(team *Team) (bool, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "num_equipe"}},
		DoNothing: true,
	}).Create(team)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistingNums returns the set of team numbers already in storage.
func (r *TeamRepository) ExistingNums() (map[string]bool, error) {
	var nums []string
	result := r.DB.Model(&Team{}).Pluck("num_equipe", &nums)
	if result.Error != nil {
		return nil, result.Error
	}
	existing := make(map[string]bool, len(nums))
	for _, num := range nums {
		existing[num] = true
	}
	return existing, nil
}

func (r *TeamRepository) Delete(numEquipe string) error {
	result := r.DB.Delete(&Team{}, "num_equipe = ?", numEquipe)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
