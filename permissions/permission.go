package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission is the access rule of one route. Permissions names the roles
// allowed to call it and Skip opens it to anonymous callers.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Allows reports whether role may call the endpoint. An endpoint that lists
// no roles is open to any authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// FindPermissions looks up a chi route pattern such as
// /v1/bookings/{id}/extension. Unknown routes get the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.byRoute[routeKey(method, path)]
}

// Parse decodes a permissions table and refuses one that declares the same
// route twice.
func Parse(data []byte) (*PermissionData, error) {
	var table PermissionData
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.byRoute = make(map[string]Permission, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, taken := table.byRoute[key]; taken {
			return nil, fmt.Errorf("route %s is declared twice", key)
		}

		table.byRoute[key] = endpoint
	}

	return &table, nil
}

var load = sync.OnceValues(func() (*PermissionData, error) {
	table, err := Parse(embedded)
	if err == nil {
		log.Info().Int("endpoints", len(table.Endpoints)).Msg("loaded embedded permissions")
	}

	return table, err
})

// Get returns the embedded table, parsed once.
func Get() *PermissionData {
	table, err := load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid embedded permissions")
	}

	return table
}
