package manifest

// Manifest is the declarative descriptor of one extension.
type Manifest struct {
	Name           string                 `yaml:"name" json:"name"`
	Version        string                 `yaml:"version" json:"version"`
	Description    string                 `yaml:"description,omitempty" json:"description,omitempty"`
	MinHostVersion string                 `yaml:"min_host_version,omitempty" json:"min_host_version,omitempty"`
	MaxHostVersion string                 `yaml:"max_host_version,omitempty" json:"max_host_version,omitempty"`
	Author         string                 `yaml:"author,omitempty" json:"author,omitempty"`
	License        string                 `yaml:"license,omitempty" json:"license,omitempty"`
	Config         map[string]interface{} `yaml:"config,omitempty" json:"config,omitempty"`
	Security       Security               `yaml:"security,omitempty" json:"security,omitempty"`
	Dependencies   []string               `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Security lists what an extension needs from the host.
type Security struct {
	RequiredPermissions []string `yaml:"required_permissions,omitempty" json:"required_permissions,omitempty"`
	InputSanitization   []string `yaml:"input_sanitization,omitempty" json:"input_sanitization,omitempty"`
}

// Clone returns a copy of m whose Config map and slices can be mutated
// without affecting m.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	c := *m
	if m.Config != nil {
		c.Config = make(map[string]interface{}, len(m.Config))
		for k, v := range m.Config {
			c.Config[k] = v
		}
	}
	c.Security.RequiredPermissions = append([]string(nil), m.Security.RequiredPermissions...)
	c.Security.InputSanitization = append([]string(nil), m.Security.InputSanitization...)
	c.Dependencies = append([]string(nil), m.Dependencies...)
	return &c
}

// SanitizesField reports whether field is listed under
// security.input_sanitization.
func (m *Manifest) SanitizesField(field string) bool {
	for _, f := range m.Security.InputSanitization {
		if f == field {
			return true
		}
	}
	return false
}
