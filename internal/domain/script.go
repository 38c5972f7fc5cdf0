package domain

import "time"

// ScriptStatus is the lifecycle state of an irrigation script.
type ScriptStatus string

const (
	ScriptActive ScriptStatus = "active"
	ScriptPaused ScriptStatus = "paused"
	ScriptDraft  ScriptStatus = "draft"
)

// ScriptStatuses lists every status in display order.
var ScriptStatuses = []ScriptStatus{ScriptActive, ScriptPaused, ScriptDraft}

// Script is a scheduled watering program.
type Script struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Schedule        string       `json:"schedule"`
	DurationMinutes int          `json:"duration_minutes"`
	Zone            string       `json:"zone"`
	Status          ScriptStatus `json:"status"`
	OwnerID         string       `json:"owner_id"`
	OwnerName       string       `json:"owner_name"`
	Favorite        bool         `json:"favorite"`
	FavoritesCount  int          `json:"favorites_count"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ScriptInput is the create/update form DTO for a script.
type ScriptInput struct {
	Name            string       `json:"name" form:"name" validate:"required,max=120"`
	Description     string       `json:"description" form:"description" validate:"max=4000"`
	Schedule        string       `json:"schedule" form:"schedule" validate:"required,cron"`
	DurationMinutes int          `json:"duration_minutes" form:"duration_minutes" validate:"gte=1,lte=1440"`
	Zone            string       `json:"zone" form:"zone" validate:"required,max=60"`
	Status          ScriptStatus `json:"status" form:"status" validate:"required,oneof=active paused draft"`
}

// InputFrom copies the editable fields of s into a form DTO.
func (s *Script) InputFrom() ScriptInput {
	return ScriptInput{
		Name:            s.Name,
		Description:     s.Description,
		Schedule:        s.Schedule,
		DurationMinutes: s.DurationMinutes,
		Zone:            s.Zone,
		Status:          s.Status,
	}
}
