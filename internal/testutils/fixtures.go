package testutils

import (
	"time"

	"github.com/irrigo/dashboard/internal/domain"
)

// Fixed is the timestamp every fixture uses.
var Fixed = time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

// Script returns a valid active script owned by u1.
func Script(id string) domain.Script {
	return domain.Script{
		ID:              id,
		Name:            "North field " + id,
		Description:     "Drip line for the **north** field.",
		Schedule:        "0 6 * * *",
		DurationMinutes: 45,
		Zone:            "north",
		Status:          domain.ScriptActive,
		OwnerID:         "u1",
		OwnerName:       "Ana",
		FavoritesCount:  3,
		CreatedAt:       Fixed,
		UpdatedAt:       Fixed,
	}
}

// Model returns a ready soil moisture model owned by u1.
func Model(id string) domain.Model {
	return domain.Model{
		ID:             id,
		Name:           "Moisture " + id,
		Description:    "Predicts *soil moisture* at 30cm.",
		Kind:           domain.ModelSoilMoisture,
		Version:        "1.2.0",
		Accuracy:       0.875,
		Status:         domain.ModelReady,
		OwnerID:        "u1",
		OwnerName:      "Ana",
		FavoritesCount: 7,
		CreatedAt:      Fixed,
		UpdatedAt:      Fixed,
	}
}

// User returns a user record.
func User(id, name string) domain.User {
	return domain.User{
		ID:       id,
		Name:     name,
		Farm:     "Green Acres",
		Location: "Valencia",
		Bio:      "Grows *citrus*.",
		JoinedAt: Fixed,
	}
}
