package security

import "fmt"

// Permission tags an extension may declare under
// security.required_permissions.
const (
	PermNetworkAccess = "network_access"
	PermFileAccess    = "file_access"
	PermSystemAccess  = "system_access"
)

// Flags are the host-wide security switches from the registry record.
type Flags struct {
	AllowNetworkAccess bool `yaml:"allow_network_access" json:"allow_network_access"`
	AllowFileAccess    bool `yaml:"allow_file_access" json:"allow_file_access"`
	AllowSystemAccess  bool `yaml:"allow_system_access" json:"allow_system_access"`
	SanitizeAllInputs  bool `yaml:"sanitize_all_inputs" json:"sanitize_all_inputs"`
}

// Permissive returns flags granting every permission.
func Permissive() Flags {
	return Flags{AllowNetworkAccess: true, AllowFileAccess: true, AllowSystemAccess: true}
}

// Grants reports whether the flags grant a known permission tag. ok is false
// for tags this host does not recognize.
func (f Flags) Grants(permission string) (granted, ok bool) {
	switch permission {
	case PermNetworkAccess:
		return f.AllowNetworkAccess, true
	case PermFileAccess:
		return f.AllowFileAccess, true
	case PermSystemAccess:
		return f.AllowSystemAccess, true
	default:
		return false, false
	}
}

// Check evaluates required permissions in order and stops at the first one
// the flags do not grant. Unrecognized tags are skipped so descriptors written
// for newer hosts still load.
func Check(required []string, flags Flags) (bool, string) {
	for _, perm := range required {
		granted, known := flags.Grants(perm)
		if !known {
			continue
		}
		if !granted {
			return false, fmt.Sprintf("permission %q is not granted by host security settings", perm)
		}
	}
	return true, "all permissions granted"
}
