package service

import (
	"errors"

	"pitchday/app_error"
	"pitchday/metrics"
	"pitchday/repository"
	"pitchday/scoring"

	"gorm.io/gorm"
)

// Notifier receives a change signal after every successful evaluation
// write. Delivery is best effort; implementations log failures and never
// return them to the writer.
type Notifier interface {
	RankingChanged(judgeId int, teamNum string, total float64)
}

type SubmitScoreInput struct {
	TeamNum        string
	Scores         repository.ScoreMap
	GeneralComment string
}

type EvaluationService struct {
	db                   *gorm.DB
	evaluationRepository *repository.EvaluationRepository
	notifier             Notifier
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{
		db:                   db,
		evaluationRepository: repository.NewEvaluationRepository(db),
	}
}

func (e *EvaluationService) SetNotifier(notifier Notifier) {
	e.notifier = notifier
}

// SubmitScore is the judge-facing write path: lock gate, team lookup,
// then upsert on the (team, judge) pair with a full replace of scores and
// comment. The total is always recomputed before persisting. The whole
// sequence runs in one transaction so a lock toggled mid-request cannot
// slip a write through. Admins bypass the lock gate.
func (e *EvaluationService) SubmitScore(judge *repository.Judge, input SubmitScoreInput, isAdmin bool) (*repository.Evaluation, error) {
	var evaluation *repository.Evaluation
	err := e.db.Transaction(func(tx *gorm.DB) error {
		event, err := repository.NewEventRepository(tx).GetCurrentEvent()
		if err != nil {
			return err
		}

		evaluationRepository := repository.NewEvaluationRepository(tx)
		existing, err := evaluationRepository.GetByTeamAndJudge(input.TeamNum, judge.Id)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if event.Locked && !isAdmin {
			if existing != nil {
				return app_error.Forbidden("results are locked, scores cannot be edited")
			}
			return app_error.Forbidden("results are locked, scores cannot be submitted")
		}

		if _, err := repository.NewTeamRepository(tx).GetTeamByNum(input.TeamNum); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return app_error.NotFound("team %s not found", input.TeamNum)
			}
			return err
		}

		if existing != nil {
			evaluation = existing
		} else {
			evaluation = &repository.Evaluation{TeamNum: input.TeamNum, JudgeId: judge.Id}
		}
		evaluation.Scores = input.Scores
		evaluation.GeneralComment = input.GeneralComment

		return e.recomputeAndSave(tx, evaluation)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a concurrent create race for the same pair
		err = app_error.Conflict("evaluation already exists for this team/judge pair")
	}
	if err != nil {
		metrics.ScoreSubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.ScoreSubmissionCounter.WithLabelValues("accepted").Inc()

	if e.notifier != nil {
		e.notifier.RankingChanged(judge.Id, evaluation.TeamNum, evaluation.Total)
	}
	return evaluation, nil
}

func (e *EvaluationService) GetEvaluations(teamNum string, judgeId int) ([]*repository.Evaluation, error) {
	return e.evaluationRepository.FindAll(teamNum, judgeId)
}

func (e *EvaluationService) GetEvaluationById(evaluationId int) (*repository.Evaluation, error) {
	evaluation, err := e.evaluationRepository.GetEvaluationById(evaluationId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.NotFound("evaluation not found")
	}
	return evaluation, err
}

func (e *EvaluationService) GetByTeamAndJudge(teamNum string, judgeId int) (*repository.Evaluation, error) {
	evaluation, err := e.evaluationRepository.GetByTeamAndJudge(teamNum, judgeId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.NotFound("no evaluation for team %s yet", teamNum)
	}
	return evaluation, err
}

// CreateEvaluation is the admin create path. Unlike SubmitScore it does
// not fall back to an update: an existing (team, judge) pair is a
// conflict.
func (e *EvaluationService) CreateEvaluation(evaluation *repository.Evaluation) (*repository.Evaluation, error) {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		evaluationRepository := repository.NewEvaluationRepository(tx)
		_, err := evaluationRepository.GetByTeamAndJudge(evaluation.TeamNum, evaluation.JudgeId)
		if err == nil {
			return app_error.Conflict("evaluation already exists for this team/judge pair")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := repository.NewTeamRepository(tx).GetTeamByNum(evaluation.TeamNum); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return app_error.NotFound("team %s not found", evaluation.TeamNum)
			}
			return err
		}
		if _, err := repository.NewJudgeRepository(tx).GetJudgeById(evaluation.JudgeId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return app_error.NotFound("judge not found")
			}
			return err
		}
		return e.recomputeAndSave(tx, evaluation)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, app_error.Conflict("evaluation already exists for this team/judge pair")
	}
	if err != nil {
		return nil, err
	}
	if e.notifier != nil {
		e.notifier.RankingChanged(evaluation.JudgeId, evaluation.TeamNum, evaluation.Total)
	}
	return evaluation, nil
}

// UpdateEvaluation is the admin edit path; it bypasses the lock gate and
// can never reassign the team or judge.
func (e *EvaluationService) UpdateEvaluation(evaluationId int, scores *repository.ScoreMap, generalComment *string) (*repository.Evaluation, error) {
	evaluation, err := e.GetEvaluationById(evaluationId)
	if err != nil {
		return nil, err
	}
	if scores != nil {
		evaluation.Scores = *scores
	}
	if generalComment != nil {
		evaluation.GeneralComment = *generalComment
	}
	if err := e.recomputeAndSave(e.db, evaluation); err != nil {
		return nil, err
	}
	if e.notifier != nil {
		e.notifier.RankingChanged(evaluation.JudgeId, evaluation.TeamNum, evaluation.Total)
	}
	return evaluation, nil
}

func (e *EvaluationService) DeleteEvaluation(evaluationId int) error {
	evaluation, err := e.GetEvaluationById(evaluationId)
	if err != nil {
		return err
	}
	if err := e.evaluationRepository.Delete(evaluationId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app_error.NotFound("evaluation not found")
		}
		return err
	}
	if e.notifier != nil {
		e.notifier.RankingChanged(evaluation.JudgeId, evaluation.TeamNum, 0)
	}
	return nil
}

// recomputeAndSave overwrites Total from the score map and the current
// weights before persisting. Callers can never set Total directly.
func (e *EvaluationService) recomputeAndSave(tx *gorm.DB, evaluation *repository.Evaluation) error {
	criteria, err := repository.NewCriterionRepository(tx).FindAll()
	if err != nil {
		return err
	}
	evaluation.Total = scoring.CalculateTotal(evaluation.Scores, criteria)
	_, err = repository.NewEvaluationRepository(tx).Save(evaluation)
	return err
}
