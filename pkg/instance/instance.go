package instance

import "github.com/angelmondragon/catalog-pricing/pkg/env"

// GetID returns the process instance identifier used in logs. Platforms that
// set DYNO or HOSTNAME win over the local default.
func GetID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	return env.Get("HOSTNAME", "local")
}
