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

type CriterionController struct {
	criterionService *service.CriterionService
}

func NewCriterionController(db *gorm.DB) *CriterionController {
	return &CriterionController{
		criterionService: service.NewCriterionService(db),
	}
}

func setupCriterionController(db *gorm.DB) []RouteInfo {
	e := NewCriterionController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "criteria", HandlerFunc: e.getCriteriaHandler()},
		{Method: "GET", Path: "admin/criteria", HandlerFunc: e.getCriteriaHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/criteria", HandlerFunc: e.createCriterionHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "admin/criteria/:criterion_id", HandlerFunc: e.getCriterionHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "admin/criteria/:criterion_id", HandlerFunc: e.updateCriterionHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "admin/criteria/:criterion_id", HandlerFunc: e.deleteCriterionHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetCriteria
// @Description Lists the evaluation criteria in form order.
// @Tags criteria
// @Produce json
// @Router /criteria [get]
// @Success 200 {array} CriterionResponse
func (e *CriterionController) getCriteriaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := e.criterionService.GetCriteria()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(criteria, toCriterionResponse))
	}
}

// @id GetCriterion
// @Description Fetches one criterion.
// @Tags criteria
// @Produce json
// @Router /admin/criteria/{criterion_id} [get]
// @Param criterion_id path int true "Criterion Id"
// @Success 200 {object} CriterionResponse
func (e *CriterionController) getCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.GetCriterionById(criterionId)
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(200, toCriterionResponse(criterion))
	}
}

// @id CreateCriterion
// @Description Creates a criterion. The key is derived from the name; weight must keep the total weight sum at or below 1.0 and the order must be unique.
// @Tags criteria
// @Accept json
// @Produce json
// @Router /admin/criteria [post]
// @Param body body CriterionCreate true "Criterion"
// @Success 201 {object} CriterionResponse
func (e *CriterionController) createCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create CriterionCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.CreateCriterion(create.toModel())
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		c.JSON(201, toCriterionResponse(criterion))
	}
}

// @id UpdateCriterion
// @Description Updates a criterion. A weight change recomputes every evaluation total against the new weights before the call returns.
// @Tags criteria
// @Accept json
// @Produce json
// @Router /admin/criteria/{criterion_id} [patch]
// @Param criterion_id path int true "Criterion Id"
// @Param body body CriterionUpdate true "Fields to update"
// @Success 200 {object} CriterionUpdateResponse
func (e *CriterionController) updateCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update CriterionUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, recalculated, err := e.criterionService.UpdateCriterion(criterionId, &service.CriterionUpdate{
			Name:        update.Name,
			Description: update.Description,
			Weight:      update.Weight,
			Order:       update.Order,
		})
		if err != nil {
			app_error.Abort(c, err)
			return
		}
		response := CriterionUpdateResponse{Criterion: toCriterionResponse(criterion)}
		if recalculated > 0 {
			response.Message = "Criterion updated. Recalculated " + strconv.Itoa(recalculated) + " evaluation totals."
		}
		c.JSON(200, response)
	}
}

// @id DeleteCriterion
// @Description Deletes a criterion. Existing evaluation score entries for it simply stop matching.
// @Tags criteria
// @Router /admin/criteria/{criterion_id} [delete]
// @Param criterion_id path int true "Criterion Id"
// @Success 204
func (e *CriterionController) deleteCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.criterionService.DeleteCriterion(criterionId); err != nil {
			app_error.Abort(c, err)
			return
		}
		c.Status(204)
	}
}

type CriterionCreate struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight" binding:"required"`
	Order       *int     `json:"order" binding:"required"`
}

type CriterionUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"`
	Order       *int     `json:"order"`
}

type CriterionResponse struct {
	Id          int       `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CriterionUpdateResponse struct {
	Criterion *CriterionResponse `json:"criterion"`
	Message   string             `json:"message,omitempty"`
}

func (e *CriterionCreate) toModel() *repository.Criterion {
	return &repository.Criterion{
		Name:        e.Name,
		Description: e.Description,
		Weight:      *e.Weight,
		Order:       *e.Order,
	}
}

func toCriterionResponse(criterion *repository.Criterion) *CriterionResponse {
	return &CriterionResponse{
		Id:          criterion.Id,
		Key:         criterion.Key,
		Name:        criterion.Name,
		Description: criterion.Description,
		Weight:      criterion.Weight,
		Order:       criterion.Order,
		CreatedAt:   criterion.CreatedAt,
		UpdatedAt:   criterion.UpdatedAt,
	}
}
