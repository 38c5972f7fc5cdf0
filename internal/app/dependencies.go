package app

import (
	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/modules/models"
	"github.com/irrigo/dashboard/internal/modules/profile"
	"github.com/irrigo/dashboard/internal/modules/scripts"
	"github.com/irrigo/dashboard/internal/pubsub"
)

// Dependencies holds the core services that are required by the application's modules.
// It is filled from the container and passed to NewModules.
type Dependencies struct {
	API       *apiclient.Client
	Publisher pubsub.Publisher
}

func profileDeps(deps Dependencies) profile.Dependencies {
	return profile.Dependencies{API: deps.API}
}

func scriptsDeps(deps Dependencies) scripts.Dependencies {
	return scripts.Dependencies{API: deps.API, Publisher: deps.Publisher}
}

func modelsDeps(deps Dependencies) models.Dependencies {
	return models.Dependencies{API: deps.API, Publisher: deps.Publisher}
}
