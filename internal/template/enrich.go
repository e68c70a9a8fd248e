package template

import "github.com/opentre/opentre/pkg/types"

// systemProperties are injected into every template's schema for presentation.
// Their values are supplied by the platform at deployment time, never by the
// caller.
var systemProperties = map[string]types.Property{
	"tre_id":         {Type: "string"},
	"workspace_id":   {Type: "string"},
	"azure_location": {Type: "string"},
}

// Enrich returns a copy of t whose property map is the union of the stored
// properties and the system-injected properties. The stored template is not
// mutated, system properties are always present, and re-enriching an already
// enriched template yields the same result.
func Enrich(t *types.ResourceTemplate) *types.ResourceTemplate {
	enriched := *t

	props := make(map[string]types.Property, len(t.Properties)+len(systemProperties))
	for name, p := range t.Properties {
		props[name] = p
	}
	for name, p := range systemProperties {
		props[name] = p
	}
	enriched.Properties = props

	return &enriched
}
