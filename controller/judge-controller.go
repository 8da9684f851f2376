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

type JudgeController struct {
	judgeService *service.JudgeService
}

func NewJudgeController(db *gorm.DB) *JudgeController {
	return &JudgeController{
		judgeService: service.NewJudgeService(db),
	}
}

func setupJudgeController(db *gorm.DB) []RouteInfo {
	e := NewJudgeController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "admin/judges", HandlerFunc: e.getJudgesHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/judges", HandlerFunc: e.createJudgeHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "admin/judges/:judge_id", HandlerFunc: e.getJudgeHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "admin/judges/:judge_id", HandlerFunc: e.updateJudgeHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "admin/judges/:judge_id", HandlerFunc: e.deleteJudgeHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/judges/:judge_id/regenerate-token", HandlerFunc: e.regenerateTokenHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "judge/login", HandlerFunc: e.judgeLoginHandler(), JudgeAuthenticated: true},
	}
	return routes
}

// @id GetJudges
// @Description Lists all judges with their access tokens.
// @Tags judges
// @Produce json
// @Router /admin/judges [get]
// @Success 200 {array} JudgeResponse
func (e *JudgeController) getJudgesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judges, err := e.judgeService.GetJudges()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(judges, toJudgeResponse))
	}
}

// @id GetJudge
// @Description Fetches one judge.
// @Tags judges
// @Produce json
// @Router /admin/judges/{judge_id} [get]
// @Param judge_id path int true "Judge Id"
// @Success 200 {object} JudgeResponse
func (e *JudgeController) getJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.GetJudgeById(judgeId)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toJudgeResponse(judge))
	}
}

// @id CreateJudge
// @Description Creates a judge and issues a fresh access token.
// @Tags judges
// @Accept json
// @Produce json
// @Router /admin/judges [post]
// @Param body body JudgeCreate true "Judge"
// @Success 201 {object} JudgeResponse
func (e *JudgeController) createJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create JudgeCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.CreateJudge(&repository.Judge{
			Name:         create.Name,
			Organization: create.Organization,
			Email:        create.Email,
			Phone:        create.Phone,
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toJudgeResponse(judge))
	}
}

// @id UpdateJudge
// @Description Updates a judge's contact details and active flag. Deactivated judges keep their evaluations but can no longer authenticate.
// @Tags judges
// @Accept json
// @Produce json
// @Router /admin/judges/{judge_id} [patch]
// @Param judge_id path int true "Judge Id"
// @Param body body JudgeUpdate true "Fields to update"
// @Success 200 {object} JudgeResponse
func (e *JudgeController) updateJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update JudgeUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.UpdateJudge(judgeId, &service.JudgeUpdate{
			Name:         update.Name,
			Organization: update.Organization,
			Email:        update.Email,
			Phone:        update.Phone,
			Active:       update.Active,
		})
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toJudgeResponse(judge))
	}
}

// @id DeleteJudge
// @Description Deletes a judge and, through the cascade, their evaluations.
// @Tags judges
// @Router /admin/judges/{judge_id} [delete]
// @Param judge_id path int true "Judge Id"
// @Success 204
func (e *JudgeController) deleteJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.judgeService.DeleteJudge(judgeId); err != nil {
			app_error.Abort(c, err)
			return
		}
		c.Status(204)
	}
}

// @id RegenerateJudgeToken
// @Description Replaces a judge's access token. The previous token stops working immediately.
// @Tags judges
// @Produce json
// @Router /admin/judges/{judge_id}/regenerate-token [post]
// @Param judge_id path int true "Judge Id"
// @Success 200 {object} JudgeTokenResponse
func (e *JudgeController) regenerateTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, err := strconv.Atoi(c.Param("judge_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.RegenerateToken(judgeId)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toJudgeTokenResponse(judge))
	}
}

// @id JudgeLogin
// @Description Validates a judge access token and returns the judge's profile.
// @Tags judges
// @Produce json
// @Router /judge/login [post]
// @Success 200 {object} JudgeResponse
func (e *JudgeController) judgeLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, toJudgeResponse(getJudge(c)))
	}
}

type JudgeCreate struct {
	Name         string `json:"name" binding:"required"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type JudgeUpdate struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Active       *bool  `json:"active"`
}

type JudgeResponse struct {
	Id           int       `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Token        string    `json:"token"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type JudgeTokenResponse struct {
	Id        int    `json:"id"`
	Token     string `json:"token"`
	LoginLink string `json:"login_link"`
}

func toJudgeResponse(judge *repository.Judge) *JudgeResponse {
	return &JudgeResponse{
		Id:           judge.Id,
		Name:         judge.Name,
		Organization: judge.Organization,
		Email:        judge.Email,
		Phone:        judge.Phone,
		Token:        judge.Token.String(),
		Active:       judge.Active,
		CreatedAt:    judge.CreatedAt,
	}
}

func toJudgeTokenResponse(judge *repository.Judge) *JudgeTokenResponse {
	return &JudgeTokenResponse{
		Id:        judge.Id,
		Token:     judge.Token.String(),
		LoginLink: "/judge?token=" + judge.Token.String(),
	}
}
