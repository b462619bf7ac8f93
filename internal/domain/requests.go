package domain

import (
	"time"
)

type TriggerRequest struct {
	UserID           string  `json:"user_id" validate:"required,uuid"`
	Lat              float64 `json:"lat" validate:"lat"`
	Lng              float64 `json:"lng" validate:"lng"`
	PermissionDenied bool    `json:"permission_denied,omitempty"`
}

type SetPreferencesRequest struct {
	Enabled         bool    `json:"enabled"`
	RadiusKM        float64 `json:"radius_km" validate:"required,radius_km"`
	NotifyIncidents bool    `json:"notify_incidents"`
	NotifyEvents    bool    `json:"notify_events"`
}

type CreateCandidateRequest struct {
	Kind   Kind            `json:"kind" validate:"required"`
	Title  string          `json:"title" validate:"required"`
	Lat    float64         `json:"lat" validate:"lat"`
	Lng    float64         `json:"lng" validate:"lng"`
	Status CandidateStatus `json:"status"`
}

type UpdateCandidateRequest struct {
	Title  *string          `json:"title,omitempty"`
	Lat    *float64         `json:"lat,omitempty"`
	Lng    *float64         `json:"lng,omitempty"`
	Status *CandidateStatus `json:"status,omitempty"`
}

type StatsRequest struct {
	Minutes int `json:"minutes"`
}

type AlertStats struct {
	NotificationsCreated int64     `json:"notifications_created"`
	UnreadNotifications  int64     `json:"unread_notifications"`
	ActiveIncidents      int64     `json:"active_incidents"`
	ActiveEvents         int64     `json:"active_events"`
	Minutes              int       `json:"minutes"`
	GeneratedAt          time.Time `json:"generated_at"`
}
