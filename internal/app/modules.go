package app

import (
	"github.com/irrigo/dashboard/internal/module"
	"github.com/irrigo/dashboard/internal/modules/models"
	"github.com/irrigo/dashboard/internal/modules/profile"
	"github.com/irrigo/dashboard/internal/modules/scripts"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		profile.New(profileDeps(deps)),
		scripts.New(scriptsDeps(deps)),
		models.New(modelsDeps(deps)),
	}
}
