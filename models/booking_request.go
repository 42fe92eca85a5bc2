package models

import (
	"encoding/json"
	"strings"
)

// Location is the requested service location.
type Location struct {
	Area    string `json:"area"`
	Address string `json:"address,omitempty"`
}

// Schedule is the requested service date and time.
type Schedule struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM"
}

// ServiceRef is a listing reference that historically arrives either as a
// plain string id or as an embedded object {"_id": "..."}.
type ServiceRef struct {
	ID string
}

func (r *ServiceRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

func (r ServiceRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// SelectedProvider is the explicit provider choice supplied by a client.
// Different upstream code paths populate different fields, so every known
// spelling is accepted here and normalized by the assignment resolver.
type SelectedProvider struct {
	ID            string      `json:"id,omitempty"`
	MongoID       string      `json:"_id,omitempty"`
	ServiceID     string      `json:"serviceId,omitempty"`
	Service       *ServiceRef `json:"service,omitempty"`
	MainServiceID string      `json:"mainServiceId,omitempty"`
}

// BookingRequest is the discovery/assignment input. It is not persisted as
// its own entity.
type BookingRequest struct {
	Category         string            `json:"category"`
	Location         Location          `json:"location"`
	Schedule         Schedule          `json:"schedule"`
	Urgent           bool              `json:"urgent,omitempty"`
	Budget           float64           `json:"budget,omitempty"`
	ProvidersNeeded  int               `json:"providersNeeded,omitempty"`
	SelectedProvider *SelectedProvider `json:"selectedProvider,omitempty"`
}

// MissingField returns the name of the first required field that is absent,
// or an empty string when the request is well formed. Requests with a missing
// field are rejected before any discovery strategy runs.
func (r *BookingRequest) MissingField() string {
	switch {
	case strings.TrimSpace(r.Category) == "":
		return "category"
	case strings.TrimSpace(r.Location.Area) == "":
		return "location.area"
	case strings.TrimSpace(r.Schedule.Date) == "":
		return "schedule.date"
	case strings.TrimSpace(r.Schedule.Time) == "":
		return "schedule.time"
	}
	return ""
}

// Needed returns the requested provider count, defaulting to one.
func (r *BookingRequest) Needed() int {
	if r.ProvidersNeeded < 1 {
		return 1
	}
	return r.ProvidersNeeded
}
