package service

import (
	"errors"

	"pitchday/app_error"
	"pitchday/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JudgeService struct {
	judgeRepository *repository.JudgeRepository
}

func NewJudgeService(db *gorm.DB) *JudgeService {
	return &JudgeService{
		judgeRepository: repository.NewJudgeRepository(db),
	}
}

func (e *JudgeService) GetJudges() ([]*repository.Judge, error) {
	return e.judgeRepository.FindAll()
}

func (e *JudgeService) GetJudgeById(judgeId int) (*repository.Judge, error) {
	judge, err := e.judgeRepository.GetJudgeById(judgeId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.NotFound("judge not found")
	}
	return judge, err
}

// GetJudgeByToken resolves an opaque bearer token to an active judge. An
// unknown, revoked or malformed token yields gorm.ErrRecordNotFound so
// callers can map it to an authentication failure.
func (e *JudgeService) GetJudgeByToken(token string) (*repository.Judge, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return e.judgeRepository.GetJudgeByToken(parsed)
}

// CreateJudge issues the judge's bearer token as a side effect.
func (e *JudgeService) CreateJudge(judge *repository.Judge) (*repository.Judge, error) {
	judge.Token = uuid.New()
	judge.Active = true
	return e.judgeRepository.Save(judge)
}

type JudgeUpdate struct {
	Name         string
	Organization string
	Email        string
	Phone        string
	Active       *bool
}

// applyJudgeUpdate merges non-empty fields onto the stored judge. Active
// only changes when the caller sent it explicitly; a contact-detail edit
// must never re-activate a revoked token.
func applyJudgeUpdate(judge *repository.Judge, update *JudgeUpdate) {
	if update.Name != "" {
		judge.Name = update.Name
	}
	if update.Organization != "" {
		judge.Organization = update.Organization
	}
	if update.Email != "" {
		judge.Email = update.Email
	}
	if update.Phone != "" {
		judge.Phone = update.Phone
	}
	if update.Active != nil {
		judge.Active = *update.Active
	}
}

func (e *JudgeService) UpdateJudge(judgeId int, update *JudgeUpdate) (*repository.Judge, error) {
	judge, err := e.GetJudgeById(judgeId)
	if err != nil {
		return nil, err
	}
	applyJudgeUpdate(judge, update)
	return e.judgeRepository.Save(judge)
}

// RegenerateToken invalidates the judge's previous token by replacing it.
func (e *JudgeService) RegenerateToken(judgeId int) (*repository.Judge, error) {
	judge, err := e.GetJudgeById(judgeId)
	if err != nil {
		return nil, err
	}
	judge.Token = uuid.New()
	return e.judgeRepository.Save(judge)
}

func (e *JudgeService) DeleteJudge(judgeId int) error {
	err := e.judgeRepository.Delete(judgeId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return app_error.NotFound("judge not found")
	}
	return err
}
