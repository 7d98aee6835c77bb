// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

//go:embed endpoints.json
var embedded []byte

var (
	defaultOnce sync.Once
	defaultReg  *EndpointRegistry
	defaultErr  error
)

// Default returns the registry compiled into the binary.
func Default() (*EndpointRegistry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Parse(embedded)
	})
	return defaultReg, defaultErr
}

// MustDefault is Default for package initialisation.
func MustDefault() *EndpointRegistry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

func LoadRegistry(path string) (*EndpointRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a registry document.
func Parse(data []byte) (*EndpointRegistry, error) {
	var reg EndpointRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	seen := make(map[string]bool, len(reg.Endpoints))
	for _, ep := range reg.Endpoints {
		if err := ValidateEndpointID(ep.ID); err != nil {
			return nil, err
		}
		if seen[ep.ID] {
			return nil, fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		seen[ep.ID] = true
	}
	return &reg, nil
}

// Find looks an endpoint up by ID.
func (r *EndpointRegistry) Find(id string) (*Endpoint, bool) {
	for i := range r.Endpoints {
		if r.Endpoints[i].ID == id {
			return &r.Endpoints[i], true
		}
	}
	return nil, false
}

// InputSchema returns the request schema for an endpoint, or an error when
// the endpoint is unknown or takes no body.
func (r *EndpointRegistry) InputSchema(id string) (map[string]interface{}, error) {
	ep, ok := r.Find(id)
	if !ok {
		return nil, fmt.Errorf("endpoint %q not registered", id)
	}
	if ep.InputSchema == nil {
		return nil, fmt.Errorf("endpoint %q has no input schema", id)
	}
	return ep.InputSchema, nil
}

// Validate checks the required fields of every endpoint.
func (r *EndpointRegistry) Validate() error {
	if len(r.Endpoints) == 0 {
		return fmt.Errorf("registry contains no endpoints")
	}
	for _, ep := range r.Endpoints {
		if ep.DisplayName == "" {
			return fmt.Errorf("endpoint %s missing required field: displayName", ep.ID)
		}
		if ep.Category == "" {
			return fmt.Errorf("endpoint %s missing required field: category", ep.ID)
		}
		switch ep.Method {
		case http.MethodGet, http.MethodPost:
		default:
			return fmt.Errorf("endpoint %s has unsupported method %q", ep.ID, ep.Method)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			return fmt.Errorf("endpoint %s path %q must start with /", ep.ID, ep.Path)
		}
		if _, err := time.ParseDuration(ep.Timeout); err != nil {
			return fmt.Errorf("endpoint %s timeout: %w", ep.ID, err)
		}
	}
	return nil
}

var idPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)

// ValidateEndpointID checks the domain.subdomain.action naming convention.
func ValidateEndpointID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("endpoint ID %q must follow format: domain.subdomain.action (e.g., growthlab.projection.calculate)", id)
	}
	return nil
}
