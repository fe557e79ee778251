package models

// CurrentVersion is the schema version written to new config files
const CurrentVersion = "1.0"

// Record is the persisted form of a Profile. The credential is split into
// two fields here and nowhere else.
type Record struct {
	Name        string   `toml:"name" json:"name" yaml:"name"`
	BaseURL     string   `toml:"base_url" json:"base_url" yaml:"base_url"`
	APIKey      string   `toml:"api_key" json:"api_key" yaml:"api_key"`
	AuthToken   string   `toml:"auth_token,omitempty" json:"auth_token,omitempty" yaml:"auth_token,omitempty"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	Tags        []string `toml:"tags" json:"tags" yaml:"tags"`
	IsActive    bool     `toml:"is_active" json:"is_active" yaml:"is_active"`
	BigModel    string   `toml:"bigmodel,omitempty" json:"bigmodel,omitempty" yaml:"bigmodel,omitempty"`
	SmallModel  string   `toml:"smallmodel,omitempty" json:"smallmodel,omitempty" yaml:"smallmodel,omitempty"`
	CreatedAt   string   `toml:"created_at,omitempty" json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string   `toml:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// File represents the structure of the config file
type File struct {
	Version      string            `toml:"version"`
	CurrentProxy string            `toml:"current_proxy,omitempty"`
	Proxies      map[string]Record `toml:"proxies"`
	Settings     map[string]any    `toml:"settings"`
}

// NewFile returns an empty config file at the current schema version
func NewFile() *File {
	return &File{
		Version:  CurrentVersion,
		Proxies:  map[string]Record{},
		Settings: map[string]any{},
	}
}

// ToRecord converts a profile to its persisted form
func ToRecord(p Profile) Record {
	return Record{
		Name:        p.Name,
		BaseURL:     p.BaseURL,
		APIKey:      p.APIKey(),
		AuthToken:   p.AuthToken(),
		Description: p.Description,
		Tags:        append([]string{}, p.Tags...),
		IsActive:    p.IsActive,
		BigModel:    p.BigModel,
		SmallModel:  p.SmallModel,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromRecord converts a persisted record back to a profile
func FromRecord(r Record) Profile {
	return Profile{
		Name:        r.Name,
		BaseURL:     r.BaseURL,
		Credential:  NewCredential(r.APIKey, r.AuthToken),
		Description: r.Description,
		Tags:        append([]string{}, r.Tags...),
		IsActive:    r.IsActive,
		BigModel:    r.BigModel,
		SmallModel:  r.SmallModel,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
