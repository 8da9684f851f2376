package controller

import (
	"time"

	"pitchday/repository"
	"pitchday/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	eventService *service.EventService
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{
		eventService: service.NewEventService(db),
	}
}

func setupEventController(db *gorm.DB) []RouteInfo {
	e := NewEventController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "event", HandlerFunc: e.getEventHandler()},
		{Method: "PATCH", Path: "admin/event", HandlerFunc: e.updateEventHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/event/lock", HandlerFunc: e.setLockedHandler(true), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "admin/event/unlock", HandlerFunc: e.setLockedHandler(false), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetEvent
// @Description Fetches the current event. One is created on first access.
// @Tags event
// @Produce json
// @Router /event [get]
// @Success 200 {object} EventResponse
func (e *EventController) getEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := e.eventService.GetCurrentEvent()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @id UpdateEvent
// @Description Updates the current event's name and lock state.
// @Tags event
// @Accept json
// @Produce json
// @Router /admin/event [patch]
// @Param body body EventUpdate true "Fields to update"
// @Success 200 {object} EventResponse
func (e *EventController) updateEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update EventUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.UpdateEvent(update.Name, update.Locked)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @id SetEventLock
// @Description Locks or unlocks score submission for the current event. Judges can no longer submit or edit while locked.
// @Tags event
// @Produce json
// @Router /admin/event/lock [post]
// @Success 200 {object} EventResponse
func (e *EventController) setLockedHandler(locked bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := e.eventService.SetLocked(locked)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

type EventUpdate struct {
	Name   string `json:"name"`
	Locked *bool  `json:"locked"`
}

type EventResponse struct {
	Id     int       `json:"id"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Locked bool      `json:"locked"`
}

func toEventResponse(event *repository.Event) *EventResponse {
	return &EventResponse{
		Id:     event.Id,
		Name:   event.Name,
		Date:   event.Date,
		Locked: event.Locked,
	}
}
