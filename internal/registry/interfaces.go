package registry

import "github.com/toyz/switchyard/internal/models"

// GuardLookup resolves guard names referenced by route handlers
type GuardLookup interface {
	Get(name string) (models.Guard, bool)
	Names() []string
}
