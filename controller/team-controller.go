package controller

import (
	"strconv"

	"pitchday/app_error"
	"pitchday/parser"
	"pitchday/repository"
	"pitchday/service"
	"pitchday/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamController struct {
	teamService *service.TeamService
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		teamService: service.NewTeamService(db),
	}
}

func setupTeamController(db *gorm.DB) []RouteInfo {
	e := NewTeamController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "admin/teams", HandlerFunc: e.getTeamsHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/teams", HandlerFunc: e.createTeamHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "admin/teams/:team_num", HandlerFunc: e.updateTeamHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "admin/teams/:team_num", HandlerFunc: e.deleteTeamHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/upload-teams", HandlerFunc: e.uploadTeamsHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "judge/teams", HandlerFunc: e.getTeamsHandler(), JudgeAuthenticated: true},
	}
	return routes
}

// @id GetTeams
// @Description Lists all teams ordered by name.
// @Tags teams
// @Produce json
// @Router /admin/teams [get]
// @Success 200 {array} TeamResponse
func (e *TeamController) getTeamsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teams, err := e.teamService.GetTeams()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(teams, toTeamResponse))
	}
}

// @id CreateTeam
// @Description Creates a team. The team number is the primary key.
// @Tags teams
// @Accept json
// @Produce json
// @Router /admin/teams [post]
// @Param body body TeamCreate true "Team"
// @Success 201 {object} TeamResponse
func (e *TeamController) createTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create TeamCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.SaveTeam(&repository.Team{
			NumEquipe: create.NumEquipe,
			NomEquipe: create.NomEquipe,
		})
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(201, toTeamResponse(team))
	}
}

// @id UpdateTeam
// @Description Renames a team.
// @Tags teams
// @Accept json
// @Produce json
// @Router /admin/teams/{team_num} [patch]
// @Param team_num path string true "Team number"
// @Param body body TeamUpdate true "Fields to update"
// @Success 200 {object} TeamResponse
func (e *TeamController) updateTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update TeamUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.GetTeamByNum(c.Param("team_num"))
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		team.NomEquipe = update.NomEquipe
		team, err = e.teamService.SaveTeam(team)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}

// @id DeleteTeam
// @Description Deletes a team and, through the cascade, all its evaluations.
// @Tags teams
// @Router /admin/teams/{team_num} [delete]
// @Param team_num path string true "Team number"
// @Success 204
func (e *TeamController) deleteTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.teamService.DeleteTeam(c.Param("team_num")); err != nil {
			app_error.Abort(c, err)
			return
		}
		c.Status(204)
	}
}

// @id UploadTeams
// @Description Imports teams from a CSV file. Column headers are matched loosely ("num", "nom"/"name"). Duplicate team numbers are skipped with a warning. Without commit=true the import only returns a preview.
// @Tags teams
// @Accept mpfd
// @Produce json
// @Router /admin/upload-teams [post]
// @Param file formData file true "CSV file"
// @Param commit formData bool false "Apply the import instead of previewing it"
// @Success 200 {object} service.ImportResult
func (e *TeamController) uploadTeamsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(400, gin.H{"error": "No file provided"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()

		parsed, err := parser.ParseTeamsCSV(file)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		commit, _ := strconv.ParseBool(c.PostForm("commit"))
		result, err := e.teamService.ImportTeams(parsed, commit)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, result)
	}
}

type TeamCreate struct {
	NumEquipe string `json:"num_equipe" binding:"required"`
	NomEquipe string `json:"nom_equipe" binding:"required"`
}

type TeamUpdate struct {
	NomEquipe string `json:"nom_equipe" binding:"required"`
}

type TeamResponse struct {
	NumEquipe string `json:"num_equipe"`
	NomEquipe string `json:"nom_equipe"`
}

func toTeamResponse(team *repository.Team) *TeamResponse {
	return &TeamResponse{
		NumEquipe: team.NumEquipe,
		NomEquipe: team.NomEquipe,
	}
}
