package controller

import (
	"strconv"
	"time"

	"pitchday/app_error"
	"pitchday/repository"
	"pitchday/service"
	"pitchday/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EvaluationController struct {
	evaluationService *service.EvaluationService
	judgeService      *service.JudgeService
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{
		evaluationService: service.NewEvaluationService(db),
		judgeService:      service.NewJudgeService(db),
	}
}

func setupEvaluationController(db *gorm.DB, notifier service.Notifier) []RouteInfo {
	e := NewEvaluationController(db)
	e.evaluationService.SetNotifier(notifier)
	routes := []RouteInfo{
		{Method: "GET", Path: "admin/evaluations", HandlerFunc: e.getEvaluationsHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/evaluations", HandlerFunc: e.createEvaluationHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "admin/evaluations/:evaluation_id", HandlerFunc: e.getEvaluationHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "admin/evaluations/:evaluation_id", HandlerFunc: e.updateEvaluationHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "admin/evaluations/:evaluation_id", HandlerFunc: e.deleteEvaluationHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/submit-score", HandlerFunc: e.adminSubmitScoreHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "judge/evaluation/:team_num", HandlerFunc: e.getOwnEvaluationHandler(), JudgeAuthenticated: true},
		{Method: "POST", Path: "judge/submit-score", HandlerFunc: e.submitScoreHandler(), JudgeAuthenticated: true},
	}
	return routes
}

// @id GetEvaluations
// @Description Lists evaluations, optionally filtered by team and judge.
// @Tags evaluations
// @Produce json
// @Router /admin/evaluations [get]
// @Param team_num query string false "Team number"
// @Param judge_id query int false "Judge Id"
// @Success 200 {array} EvaluationResponse
func (e *EvaluationController) getEvaluationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId := 0
		if query := c.Query("judge_id"); query != "" {
			var err error
			judgeId, err = strconv.Atoi(query)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		evaluations, err := e.evaluationService.GetEvaluations(c.Query("team_num"), judgeId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(evaluations, toEvaluationResponse))
	}
}

// @id GetEvaluation
// @Description Fetches one evaluation.
// @Tags evaluations
// @Produce json
// @Router /admin/evaluations/{evaluation_id} [get]
// @Param evaluation_id path int true "Evaluation Id"
// @Success 200 {object} EvaluationResponse
func (e *EvaluationController) getEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		evaluationId, err := strconv.Atoi(c.Param("evaluation_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		evaluation, err := e.evaluationService.GetEvaluationById(evaluationId)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toEvaluationResponse(evaluation))
	}
}

// @id CreateEvaluation
// @Description Creates an evaluation for a team and judge pair. Fails with a conflict if the pair already has one.
// @Tags evaluations
// @Accept json
// @Produce json
// @Router /admin/evaluations [post]
// @Param body body EvaluationCreate true "Evaluation"
// @Success 201 {object} EvaluationResponse
func (e *EvaluationController) createEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create EvaluationCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		scores, err := toScoreMap(create.Scores)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		evaluation, err := e.evaluationService.CreateEvaluation(&repository.Evaluation{
			TeamNum:        create.TeamNum,
			JudgeId:        create.JudgeId,
			Scores:         scores,
			GeneralComment: create.GeneralComment,
		})
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(201, toEvaluationResponse(evaluation))
	}
}

// @id UpdateEvaluation
// @Description Updates an evaluation's scores or comment. The total is recomputed, the team and judge never change, and the event lock does not apply.
// @Tags evaluations
// @Accept json
// @Produce json
// @Router /admin/evaluations/{evaluation_id} [patch]
// @Param evaluation_id path int true "Evaluation Id"
// @Param body body EvaluationUpdate true "Fields to update"
// @Success 200 {object} EvaluationResponse
func (e *EvaluationController) updateEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		evaluationId, err := strconv.Atoi(c.Param("evaluation_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update EvaluationUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var scores *repository.ScoreMap
		if update.Scores != nil {
			converted, err := toScoreMap(update.Scores)
			if err != nil {
				app_error.Abort(c, err)
				return
			}
			scores = &converted
		}
		evaluation, err := e.evaluationService.UpdateEvaluation(evaluationId, scores, update.GeneralComment)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toEvaluationResponse(evaluation))
	}
}

// @id DeleteEvaluation
// @Description Deletes an evaluation.
// @Tags evaluations
// @Router /admin/evaluations/{evaluation_id} [delete]
// @Param evaluation_id path int true "Evaluation Id"
// @Success 204
func (e *EvaluationController) deleteEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		evaluationId, err := strconv.Atoi(c.Param("evaluation_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.evaluationService.DeleteEvaluation(evaluationId); err != nil {
			app_error.Abort(c, err)
			return
		}
		c.Status(204)
	}
}

// @id GetOwnEvaluation
// @Description Returns the authenticated judge's evaluation for a team, or 404 if none was submitted yet.
// @Tags evaluations
// @Produce json
// @Router /judge/evaluation/{team_num} [get]
// @Param team_num path string true "Team number"
// @Success 200 {object} EvaluationResponse
func (e *EvaluationController) getOwnEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judge := getJudge(c)
		evaluation, err := e.evaluationService.GetByTeamAndJudge(c.Param("team_num"), judge.Id)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toEvaluationResponse(evaluation))
	}
}

// @id SubmitScore
// @Description Submits or replaces the authenticated judge's evaluation of a team. Rejected with 403 while the event is locked. Keys are matched to criteria loosely, so unknown keys are stored but do not affect the total.
// @Tags evaluations
// @Accept json
// @Produce json
// @Router /judge/submit-score [post]
// @Param body body ScoreSubmission true "Scores"
// @Success 200 {object} EvaluationResponse
func (e *EvaluationController) submitScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var submission ScoreSubmission
		if err := c.BindJSON(&submission); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		e.submitScore(c, getJudge(c), submission, false)
	}
}

// @id AdminSubmitScore
// @Description Submits or replaces an evaluation on a judge's behalf. Administrators bypass the event lock.
// @Tags evaluations
// @Accept json
// @Produce json
// @Router /admin/submit-score [post]
// @Param body body AdminScoreSubmission true "Scores"
// @Success 200 {object} EvaluationResponse
func (e *EvaluationController) adminSubmitScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var submission AdminScoreSubmission
		if err := c.BindJSON(&submission); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.GetJudgeById(submission.JudgeId)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		e.submitScore(c, judge, submission.ScoreSubmission, true)
	}
}

func (e *EvaluationController) submitScore(c *gin.Context, judge *repository.Judge, submission ScoreSubmission, isAdmin bool) {
	scores, err := toScoreMap(submission.Scores)
	if err != nil {
		app_error.Abort(c, err)
		return
	}
	if len(scores) == 0 {
		c.JSON(400, gin.H{"error": "At least one score is required"})
		return
	}
	evaluation, err := e.evaluationService.SubmitScore(judge, service.SubmitScoreInput{
		TeamNum:        submission.TeamNum,
		Scores:         scores,
		GeneralComment: submission.GeneralComment,
	}, isAdmin)
	if err != nil {
		app_error.Abort(c, err)
		return
	}
	c.JSON(200, toEvaluationResponse(evaluation))
}

type ScoreEntryInput struct {
	Score *float64 `json:"score" binding:"required"`
	Note  string   `json:"note"`
}

type ScoreSubmission struct {
	TeamNum        string                     `json:"team_id" binding:"required"`
	Scores         map[string]ScoreEntryInput `json:"scores" binding:"required"`
	GeneralComment string                     `json:"general_comment"`
}

type AdminScoreSubmission struct {
	ScoreSubmission
	JudgeId int `json:"judge_id" binding:"required"`
}

type EvaluationCreate struct {
	TeamNum        string                     `json:"team_num" binding:"required"`
	JudgeId        int                        `json:"judge_id" binding:"required"`
	Scores         map[string]ScoreEntryInput `json:"scores"`
	GeneralComment string                     `json:"general_comment"`
}

type EvaluationUpdate struct {
	Scores         map[string]ScoreEntryInput `json:"scores"`
	GeneralComment *string                    `json:"general_comment"`
}

type EvaluationResponse struct {
	Id             int                 `json:"id"`
	TeamNum        string              `json:"team_num"`
	TeamName       string              `json:"team_name,omitempty"`
	JudgeId        int                 `json:"judge_id"`
	JudgeName      string              `json:"judge_name,omitempty"`
	Scores         repository.ScoreMap `json:"scores"`
	Total          float64             `json:"total"`
	GeneralComment string              `json:"general_comment"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toScoreMap(scores map[string]ScoreEntryInput) (repository.ScoreMap, error) {
	result := make(repository.ScoreMap, len(scores))
	for key, entry := range scores {
		if entry.Score == nil {
			return nil, app_error.Validation("score for %q is required", key)
		}
		if *entry.Score < 0 || *entry.Score > 5 {
			return nil, app_error.Validation("score for %q must be between 0 and 5", key)
		}
		result[key] = repository.ScoreEntry{Score: *entry.Score, Note: entry.Note}
	}
	return result, nil
}

func toEvaluationResponse(evaluation *repository.Evaluation) *EvaluationResponse {
	response := &EvaluationResponse{
		Id:             evaluation.Id,
		TeamNum:        evaluation.TeamNum,
		JudgeId:        evaluation.JudgeId,
		Scores:         evaluation.Scores,
		Total:          evaluation.Total,
		GeneralComment: evaluation.GeneralComment,
		UpdatedAt:      evaluation.UpdatedAt,
	}
	if evaluation.Team != nil {
		response.TeamName = evaluation.Team.NomEquipe
	}
	if evaluation.Judge != nil {
		response.JudgeName = evaluation.Judge.Name
	}
	return response
}
