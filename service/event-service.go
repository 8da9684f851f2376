package service

import (
	"pitchday/repository"

	"gorm.io/gorm"
)

type EventService struct {
	eventRepository *repository.EventRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		eventRepository: repository.NewEventRepository(db),
	}
}

func (e *EventService) GetCurrentEvent() (*repository.Event, error) {
	return e.eventRepository.GetCurrentEvent()
}

// SetLocked flips the event-wide write gate. The transition is immediate;
// there are no intermediate states.
func (e *EventService) SetLocked(locked bool) (*repository.Event, error) {
	event, err := e.eventRepository.GetCurrentEvent()
	if err != nil {
		return nil, err
	}
	event.Locked = locked
	return e.eventRepository.Save(event)
}

func (e *EventService) UpdateEvent(name string, locked *bool) (*repository.Event, error) {
	event, err := e.eventRepository.GetCurrentEvent()
	if err != nil {
		return nil, err
	}
	if name != "" {
		event.Name = name
	}
	if locked != nil {
		event.Locked = *locked
	}
	return e.eventRepository.Save(event)
}
