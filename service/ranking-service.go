package service

import (
	"time"

	"pitchday/metrics"
	"pitchday/repository"
	"pitchday/scoring"

	"gorm.io/gorm"
)

// RankingService derives the ranking view from evaluations and criteria on
// every query. It owns no persisted state and performs no writes, so it is
// safe to call concurrently.
type RankingService struct {
	teamRepository       *repository.TeamRepository
	evaluationRepository *repository.EvaluationRepository
	criterionRepository  *repository.CriterionRepository
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{
		teamRepository:       repository.NewTeamRepository(db),
		evaluationRepository: repository.NewEvaluationRepository(db),
		criterionRepository:  repository.NewCriterionRepository(db),
	}
}

// GetRanking computes the current ranking, optionally restricted to one
// judge's evaluations. Pass 0 for no filter.
func (e *RankingService) GetRanking(judgeId int) ([]*scoring.TeamRanking, error) {
	t := time.Now()
	teams, err := e.teamRepository.FindAll()
	if err != nil {
		return nil, err
	}
	evaluations, err := e.evaluationRepository.FindAll("", 0)
	if err != nil {
		return nil, err
	}
	criteria, err := e.criterionRepository.FindAll()
	if err != nil {
		return nil, err
	}
	rankings := scoring.RankTeams(teams, evaluations, criteria, judgeId)
	metrics.RankingDuration.Observe(time.Since(t).Seconds())
	return rankings, nil
}
