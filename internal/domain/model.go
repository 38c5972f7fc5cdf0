package domain

import "time"

// ModelKind classifies what a predictive model estimates.
type ModelKind string

const (
	ModelEvapotranspiration ModelKind = "evapotranspiration"
	ModelSoilMoisture       ModelKind = "soil-moisture"
	ModelYield              ModelKind = "yield"
	ModelWeather            ModelKind = "weather"
)

// ModelKinds lists every kind in display order.
var ModelKinds = []ModelKind{ModelEvapotranspiration, ModelSoilMoisture, ModelYield, ModelWeather}

// ModelStatus is the training state of a model record.
type ModelStatus string

const (
	ModelTraining ModelStatus = "training"
	ModelReady    ModelStatus = "ready"
	ModelFailed   ModelStatus = "failed"
	ModelArchived ModelStatus = "archived"
)

// ModelStatuses lists every status in display order.
var ModelStatuses = []ModelStatus{ModelTraining, ModelReady, ModelFailed, ModelArchived}

// Model is a predictive/ML model record.
type Model struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Kind           ModelKind   `json:"kind"`
	Version        string      `json:"version"`
	Accuracy       float64     `json:"accuracy"`
	Status         ModelStatus `json:"status"`
	OwnerID        string      `json:"owner_id"`
	OwnerName      string      `json:"owner_name"`
	Favorite       bool        `json:"favorite"`
	FavoritesCount int         `json:"favorites_count"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ModelInput is the create/update form DTO for a model.
type ModelInput struct {
	Name        string      `json:"name" form:"name" validate:"required,max=120"`
	Description string      `json:"description" form:"description" validate:"max=4000"`
	Kind        ModelKind   `json:"kind" form:"kind" validate:"required,oneof=evapotranspiration soil-moisture yield weather"`
	Version     string      `json:"version" form:"version" validate:"required,max=40"`
	Accuracy    float64     `json:"accuracy" form:"accuracy" validate:"gte=0,lte=1"`
	Status      ModelStatus `json:"status" form:"status" validate:"required,oneof=training ready failed archived"`
}

// InputFrom copies the editable fields of m into a form DTO.
func (m *Model) InputFrom() ModelInput {
	return ModelInput{
		Name:        m.Name,
		Description: m.Description,
		Kind:        m.Kind,
		Version:     m.Version,
		Accuracy:    m.Accuracy,
		Status:      m.Status,
	}
}
