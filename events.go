package console

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
)

// EventStatus tracks an event through its booking lifecycle.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a scheduled engagement managed through the console.
type Event struct {
	ID                   flexibleID  `json:"id,omitempty"`
	Day                  string      `json:"day"`
	Date                 string      `json:"date"`
	Time                 string      `json:"time"`
	DurationMinutes      int         `json:"duration"`
	Place                string      `json:"place"`
	NumberOfParticipants int         `json:"number_of_participants"`
	Status               EventStatus `json:"status"`
	MeetingTime          string      `json:"meeting_time,omitempty"`
	MeetingDate          string      `json:"meeting_date,omitempty"`
	PlaceOfMeeting       string      `json:"place_of_meeting,omitempty"`
}

// EventsService is a typed surface over the authenticated client for
// the events resource. Every call rides the bearer/refresh machinery,
// so an expired session surfaces as ErrTokenExpired after the forced
// sign-out has already run.
type EventsService struct {
	client *Client
}

// NewEventsService returns an events API bound to the client.
func NewEventsService(client *Client) *EventsService {
	return &EventsService{client: client}
}

// List fetches every event visible to the session.
func (s *EventsService) List(ctx context.Context) ([]Event, error) {
	resp, err := s.client.Get(ctx, "/events/")
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError("list events", resp)
	}

	var out []Event
	if err := resp.Decode(&out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode events list")
	}
	return out, nil
}

// Get fetches a single event by id.
func (s *EventsService) Get(ctx context.Context, id string) (*Event, error) {
	resp, err := s.client.Get(ctx, "/events/"+id+"/")
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError("get event", resp)
	}

	out := &Event{}
	if err := resp.Decode(out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode event")
	}
	return out, nil
}

// Create registers a new event.
func (s *EventsService) Create(ctx context.Context, event Event) (*Event, error) {
	resp, err := s.client.Post(ctx, "/events/", event)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError("create event", resp)
	}

	out := &Event{}
	if err := resp.Decode(out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode created event")
	}
	return out, nil
}

// Update replaces an existing event.
func (s *EventsService) Update(ctx context.Context, id string, event Event) (*Event, error) {
	resp, err := s.client.Put(ctx, "/events/"+id+"/", event)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError("update event", resp)
	}

	out := &Event{}
	if err := resp.Decode(out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to decode updated event")
	}
	return out, nil
}

// Delete removes an event.
func (s *EventsService) Delete(ctx context.Context, id string) error {
	resp, err := s.client.Delete(ctx, "/events/"+id+"/")
	if err != nil {
		return err
	}
	if !resp.OK() {
		return apiError("delete event", resp)
	}
	return nil
}

func apiError(operation string, resp *APIResponse) error {
	return errors.New(fmt.Sprintf("%s failed with status %d", operation, resp.Status), errors.CategoryOperation).
		WithMetadata(map[string]any{"status": resp.Status})
}
