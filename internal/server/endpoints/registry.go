package endpoints

import (
	"github.com/mwootten/extractor/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		&InfoEndpoint{},
		&HealthEndpoint{},
		&SchemaEndpoint{},
		&ExtractEndpoint{},
	}
}
