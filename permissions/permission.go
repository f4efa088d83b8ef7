package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"rental/shared/constant"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleUser}

// Permission lists the roles allowed on one routed endpoint. Path is the chi route pattern.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint. No listed roles means any authenticated role.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func endpointKey(method, path string) string {
	return method + " " + path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		return r.index[endpointKey(method, path)]
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Public counts the endpoints reachable without a token.
func (r *PermissionData) Public() int {
	count := 0

	for _, endpoint := range r.Endpoints {
		if endpoint.Skip {
			count++
		}
	}

	return count
}

// Load decodes a permissions document and rejects duplicate endpoints, unknown methods and unknown roles.
func Load(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		switch endpoint.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return nil, fmt.Errorf("endpoint %s: unsupported method %q", endpoint.Path, endpoint.Method)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("endpoint %s %s: unknown role %q", endpoint.Method, endpoint.Path, role)
			}
		}

		key := endpointKey(endpoint.Method, endpoint.Path)
		if _, ok := data.index[key]; ok {
			return nil, fmt.Errorf("endpoint %s declared twice", key)
		}

		data.index[key] = endpoint
	}

	return &data, nil
}

func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().
		Int("endpoints", len(permissions.Endpoints)).
		Int("public", permissions.Public()).
		Msg("Successfully loaded embedded permissions")

	return permissions
}
