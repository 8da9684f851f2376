package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Event gates writability. When locked, judges cannot create or edit
// evaluations; admins are exempt.
type Event struct {
	Id        int       `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Date      time.Time `gorm:"not null"`
	Locked    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// GetCurrentEvent returns the single conceptual current event, creating it
// unlocked on first access.
func (r *EventRepository) GetCurrentEvent() (*Event, error) {
	var event Event
	result := r.DB.Order("date DESC").First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			event = Event{Name: "Pitching Day", Date: time.Now()}
			if err := r.DB.Create(&event).Error; err != nil {
				return nil, fmt.Errorf("failed to create current event: %v", err)
			}
			return &event, nil
		}
		return nil, fmt.Errorf("no current event found: %v", result.Error)
	}
	return &event, nil
}

func (r *EventRepository) Save(event *Event) (*Event, error) {
	result := r.DB.Save(event)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save event: %v", result.Error)
	}
	return event, nil
}
