package models

import "slices"

// BuiltinName is the reserved name of the profile that represents "no proxy".
const BuiltinName = "no"

// Profile represents a single proxy profile
type Profile struct {
	Name        string
	BaseURL     string
	Credential  Credential
	Description string
	Tags        []string
	IsActive    bool
	BigModel    string // Optional model override for the main model
	SmallModel  string // Optional model override for the small/fast model
	CreatedAt   string
	UpdatedAt   string
}

// APIKey returns the API key, or "" when the profile authenticates another way
func (p Profile) APIKey() string {
	if p.Credential.Kind == CredentialAPIKey {
		return p.Credential.Value
	}
	return ""
}

// AuthToken returns the auth token, or "" when the profile authenticates another way
func (p Profile) AuthToken() string {
	if p.Credential.Kind == CredentialAuthToken {
		return p.Credential.Value
	}
	return ""
}

// IsBuiltin reports whether p is the reserved "no" profile
func (p Profile) IsBuiltin() bool {
	return p.Name == BuiltinName
}

// HasTag reports whether the profile carries the given tag
func (p Profile) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Clone returns a copy that shares no slices with p
func (p Profile) Clone() Profile {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Builtin returns the reserved "no" profile. Switching to it clears the
// current pointer and any Claude Code environment overrides.
func Builtin() Profile {
	return Profile{
		Name:        BuiltinName,
		BaseURL:     "http://localhost/",
		Credential:  APIKey("builtin-no-proxy"),
		Description: "Built-in profile: clears the active proxy and Claude Code overrides",
		Tags:        []string{"builtin", "reset"},
		IsActive:    true,
	}
}
