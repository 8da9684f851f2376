package service

import (
	"errors"

	"pitchday/app_error"
	"pitchday/metrics"
	"pitchday/repository"
	"pitchday/scoring"

	"gorm.io/gorm"
)

const weightEpsilon = 1e-9

type CriterionService struct {
	db                  *gorm.DB
	criterionRepository *repository.CriterionRepository
}

func NewCriterionService(db *gorm.DB) *CriterionService {
	return &CriterionService{
		db:                  db,
		criterionRepository: repository.NewCriterionRepository(db),
	}
}

func (e *CriterionService) GetCriteria() ([]*repository.Criterion, error) {
	return e.criterionRepository.FindAll()
}

func (e *CriterionService) GetCriterionById(criterionId int) (*repository.Criterion, error) {
	criterion, err := e.criterionRepository.GetCriterionById(criterionId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.NotFound("criterion not found")
	}
	return criterion, err
}

func (e *CriterionService) CreateCriterion(criterion *repository.Criterion) (*repository.Criterion, error) {
	if err := e.validate(criterion.Weight, criterion.Order, 0); err != nil {
		return nil, err
	}
	criterion.Key = scoring.NormalizeKey(criterion.Name)
	criterion, err := e.criterionRepository.Save(criterion)
	if err != nil {
		return nil, mapDuplicateKeyError(err, criterion.Key)
	}
	return criterion, nil
}

// mapDuplicateKeyError translates the unique-index violation on Key into a
// validation error. Distinct names can normalize to the same key ("Team"
// and "team!"), which the weight/order validation cannot catch up front.
func mapDuplicateKeyError(err error, key string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return app_error.Validation("a criterion with key %s already exists", key)
	}
	return err
}

type CriterionUpdate struct {
	Name        *string
	Description *string
	Weight      *float64
	Order       *int
}

// UpdateCriterion applies the update and, when the weight changed, runs
// the cascade that recomputes every evaluation total against the new
// weights. Returns the number of recomputed evaluations.
func (e *CriterionService) UpdateCriterion(criterionId int, update *CriterionUpdate) (*repository.Criterion, int, error) {
	criterion, err := e.GetCriterionById(criterionId)
	if err != nil {
		return nil, 0, err
	}

	weight := criterion.Weight
	if update.Weight != nil {
		weight = *update.Weight
	}
	order := criterion.Order
	if update.Order != nil {
		order = *update.Order
	}
	if err := e.validate(weight, order, criterion.Id); err != nil {
		return nil, 0, err
	}

	weightChanged := update.Weight != nil && *update.Weight != criterion.Weight
	if update.Name != nil && *update.Name != criterion.Name {
		criterion.Name = *update.Name
		criterion.Key = scoring.NormalizeKey(*update.Name)
	}
	if update.Description != nil {
		criterion.Description = *update.Description
	}
	criterion.Weight = weight
	criterion.Order = order

	criterion, err = e.criterionRepository.Save(criterion)
	if err != nil {
		return nil, 0, mapDuplicateKeyError(err, criterion.Key)
	}

	recalculated := 0
	if weightChanged {
		recalculated, err = e.RecalculateAllTotals()
		if err != nil {
			return nil, 0, err
		}
	}
	return criterion, recalculated, nil
}

func (e *CriterionService) DeleteCriterion(criterionId int) error {
	err := e.criterionRepository.Delete(criterionId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return app_error.NotFound("criterion not found")
	}
	return err
}

// RecalculateAllTotals re-saves every evaluation against the current
// weights. Totals are only guaranteed consistent with criterion weights
// after this explicit pass; it runs in one transaction holding the
// criterion rows so no evaluation is recomputed against a mix of old and
// new weights.
func (e *CriterionService) RecalculateAllTotals() (int, error) {
	count := 0
	err := e.db.Transaction(func(tx *gorm.DB) error {
		criteria, err := repository.NewCriterionRepository(tx).FindAllLocked()
		if err != nil {
			return err
		}
		matcher := scoring.NewCriterionMatcher(criteria)

		evaluationRepository := repository.NewEvaluationRepository(tx)
		evaluations, err := evaluationRepository.FindAll("", 0)
		if err != nil {
			return err
		}
		for _, evaluation := range evaluations {
			evaluation.Total = matcher.WeightedTotal(evaluation.Scores)
			if _, err := evaluationRepository.Save(evaluation); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.TotalRecalculationCounter.Add(float64(count))
	return count, nil
}

func (e *CriterionService) validate(weight float64, order int, excludeId int) error {
	if weight < 0 || weight > 1 {
		return app_error.Validation("weight must be between 0 and 1")
	}

	existing, err := e.criterionRepository.GetByOrder(order)
	if err == nil && existing.Id != excludeId {
		return app_error.Validation("a criterion with order %d already exists", order)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sum, err := e.criterionRepository.SumWeightsExcluding(excludeId)
	if err != nil {
		return err
	}
	if sum+weight > 1+weightEpsilon {
		return app_error.Validation("the sum of weights cannot exceed 1.0, total with this criterion: %.2f", sum+weight)
	}
	return nil
}
