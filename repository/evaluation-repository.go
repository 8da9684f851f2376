package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ScoreEntry is one judge score for one criterion key.
type ScoreEntry struct {
	Score float64 `json:"score"`
	Note  string  `json:"note,omitempty"`
}

// ScoreMap maps free-form criterion keys to score entries. Keys are not
// required to be canonical criterion keys; matching is fuzzy at read time.
type ScoreMap map[string]ScoreEntry

func (s *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*s = ScoreMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for ScoreMap: %T", value)
	}
}

func (s ScoreMap) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Evaluation is one judge's complete scoring of one team. The unique index
// on (team_num, judge_id) guarantees at most one row per pair even under
// concurrent submissions.
type Evaluation struct {
	Id             int      `gorm:"primaryKey"`
	TeamNum        string   `gorm:"column:team_num;not null;uniqueIndex:idx_evaluations_team_judge"`
	JudgeId        int      `gorm:"not null;uniqueIndex:idx_evaluations_team_judge"`
	Team           *Team    `gorm:"foreignKey:TeamNum;references:NumEquipe;constraint:OnDelete:CASCADE"`
	Judge          *Judge   `gorm:"foreignKey:JudgeId;constraint:OnDelete:CASCADE"`
	Scores         ScoreMap `gorm:"type:jsonb;not null"`
	Total          float64  `gorm:"not null;default:0"`
	GeneralComment string   `gorm:"not null;default:''"`
	UpdatedAt      time.Time
}

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) GetEvaluationById(evaluationId int) (*Evaluation, error) {
	var evaluation Evaluation
	result := r.DB.Preload("Team").Preload("Judge").First(&evaluation, evaluationId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) GetByTeamAndJudge(teamNum string, judgeId int) (*Evaluation, error) {
	var evaluation Evaluation
	result := r.DB.Where("team_num = ? AND judge_id = ?", teamNum, judgeId).First(&evaluation)
	if result.Error != nil {
		return nil, result.Error
	}
	return &evaluation, nil
}

// FindAll lists evaluations, optionally restricted to a team and/or judge.
// Pass "" / 0 to skip a filter.
func (r *EvaluationRepository) FindAll(teamNum string, judgeId int) ([]*Evaluation, error) {
	var evaluations []*Evaluation
	query := r.DB.Preload("Team").Preload("Judge")
	if teamNum != "" {
		query = query.Where("team_num = ?", teamNum)
	}
	if judgeId != 0 {
		query = query.Where("judge_id = ?", judgeId)
	}
	result := query.Find(&evaluations)
	if result.Error != nil {
		return nil, result.Error
	}
	return evaluations, nil
}

func (r *EvaluationRepository) Save(evaluation *Evaluation) (*Evaluation, error) {
	result := r.DB.Save(evaluation)
	if result.Error != nil {
		return nil, result.Error
	}
	return evaluation, nil
}

func (r *EvaluationRepository) Delete(evaluationId int) error {
	result := r.DB.Delete(&Evaluation{}, evaluationId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
