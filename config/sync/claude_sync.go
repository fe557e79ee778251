package sync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"claudewarp/config/models"
	"claudewarp/config/storage"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// EnvPrefix marks the env entries owned by claudewarp
const EnvPrefix = "ANTHROPIC_"

// Managed env keys written by Apply
const (
	KeyBaseURL        = EnvPrefix + "BASE_URL"
	KeyAPIKey         = EnvPrefix + "API_KEY"
	KeyAuthToken      = EnvPrefix + "AUTH_TOKEN"
	KeyModel          = EnvPrefix + "MODEL"
	KeySmallFastModel = EnvPrefix + "SMALL_FAST_MODEL"
)

// ExternalConfig is a downstream configuration that mirrors the current profile.
type ExternalConfig interface {
	// Apply points the downstream configuration at p
	Apply(p models.Profile) error
	// Clear removes every override and reports whether the downstream
	// configuration is now clean
	Clear() bool
}

// ClaudeSettings edits the env object of a Claude Code settings.json file.
// A missing file is left alone.
type ClaudeSettings struct {
	Path    string
	Backups *storage.BackupManager
	Logger  *zap.Logger
}

// NewClaudeSettings creates a ClaudeSettings for path
func NewClaudeSettings(path string, logger *zap.Logger) *ClaudeSettings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaudeSettings{
		Path:    path,
		Backups: storage.NewBackupManager(storage.DefaultBackupRetention),
		Logger:  logger,
	}
}

// Apply writes the profile's endpoint, credential and model overrides
func (c *ClaudeSettings) Apply(p models.Profile) error {
	return c.edit(func(content string) (string, error) {
		return UpdateEnvField(content, p)
	})
}

// Clear removes every ANTHROPIC_* entry from env
func (c *ClaudeSettings) Clear() bool {
	err := c.edit(ClearEnvField)
	if err != nil {
		c.logger().Warn("failed to clear Claude Code settings",
			zap.String("path", c.Path), zap.Error(err))
		return false
	}
	return true
}

func (c *ClaudeSettings) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *ClaudeSettings) edit(fn func(string) (string, error)) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.logger().Debug("Claude Code settings not found, skipping", zap.String("path", c.Path))
			return nil
		}
		return fmt.Errorf("failed to read Claude Code settings: %w", err)
	}

	original := string(data)
	if strings.TrimSpace(original) == "" {
		original = "{}"
	}

	updated, err := fn(original)
	if err != nil {
		return err
	}
	if updated == original {
		return nil
	}

	if err := storage.AtomicWrite(c.Path, []byte(updated), storage.WriteOptions{
		Backups: c.Backups,
		OnCleanupError: func(err error) {
			c.logger().Warn("failed to prune settings backups", zap.Error(err))
		},
	}); err != nil {
		return fmt.Errorf("failed to write Claude Code settings: %w", err)
	}
	return nil
}

// UpdateEnvField sets the managed ANTHROPIC_ entries of env to match p.
// Unset fields are removed. Everything outside those keys is preserved byte for byte.
func UpdateEnvField(originalContent string, p models.Profile) (string, error) {
	if !gjson.Valid(originalContent) {
		return "", fmt.Errorf("invalid JSON content")
	}

	values := map[string]string{
		KeyBaseURL:        p.BaseURL,
		KeyAPIKey:         p.APIKey(),
		KeyAuthToken:      p.AuthToken(),
		KeyModel:          p.BigModel,
		KeySmallFastModel: p.SmallModel,
	}

	updated := originalContent
	var err error
	for _, key := range []string{KeyBaseURL, KeyAPIKey, KeyAuthToken, KeyModel, KeySmallFastModel} {
		path := "env." + escapePath(key)
		if v := values[key]; v != "" {
			updated, err = sjson.Set(updated, path, v)
		} else if gjson.Get(updated, path).Exists() {
			updated, err = sjson.Delete(updated, path)
		}
		if err != nil {
			return "", fmt.Errorf("failed to update env field: %w", err)
		}
	}

	if err := validateJSONUpdate(originalContent, updated); err != nil {
		return "", fmt.Errorf("update validation failed: %w", err)
	}
	return updated, nil
}

// ClearEnvField removes every ANTHROPIC_ entry from env
func ClearEnvField(originalContent string) (string, error) {
	if !gjson.Valid(originalContent) {
		return "", fmt.Errorf("invalid JSON content")
	}

	env := gjson.Get(originalContent, "env")
	if !env.Exists() {
		return originalContent, nil
	}
	if !env.IsObject() {
		return "", fmt.Errorf("env field is not an object")
	}

	var keys []string
	env.ForEach(func(key, _ gjson.Result) bool {
		if isManagedKey(key.String()) {
			keys = append(keys, key.String())
		}
		return true
	})

	updated := originalContent
	for _, key := range keys {
		var err error
		updated, err = sjson.Delete(updated, "env."+escapePath(key))
		if err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}

	if err := validateJSONUpdate(originalContent, updated); err != nil {
		return "", fmt.Errorf("update validation failed: %w", err)
	}
	return updated, nil
}

// validateJSONUpdate checks that only ANTHROPIC_ entries of env differ
func validateJSONUpdate(originalContent, updatedContent string) error {
	if !gjson.Valid(updatedContent) {
		return fmt.Errorf("updated JSON is invalid")
	}

	original := gjson.Parse(originalContent)
	updated := gjson.Parse(updatedContent)

	var differences []string
	original.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "env" {
			return true
		}
		if other := updated.Get(escapePath(key.String())); !other.Exists() {
			differences = append(differences, key.String()+" (missing)")
		} else if other.Raw != value.Raw {
			differences = append(differences, key.String())
		}
		return true
	})
	updated.ForEach(func(key, _ gjson.Result) bool {
		if key.String() != "env" && !original.Get(escapePath(key.String())).Exists() {
			differences = append(differences, key.String()+" (new)")
		}
		return true
	})
	if len(differences) > 0 {
		return fmt.Errorf("unexpected changes to non-env fields: %s", strings.Join(differences, ", "))
	}

	updatedEnv := updated.Get("env")
	var envErr error
	original.Get("env").ForEach(func(key, value gjson.Result) bool {
		if isManagedKey(key.String()) {
			return true
		}
		other := updatedEnv.Get(escapePath(key.String()))
		switch {
		case !other.Exists():
			envErr = fmt.Errorf("non-ANTHROPIC field '%s' was deleted", key.String())
		case other.Raw != value.Raw:
			envErr = fmt.Errorf("non-ANTHROPIC field '%s' was modified", key.String())
		}
		return envErr == nil
	})
	return envErr
}

func isManagedKey(key string) bool {
	return strings.HasPrefix(strings.ToUpper(key), EnvPrefix)
}

// escapePath escapes gjson/sjson path syntax in a literal key
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultClaudeSettingsPath returns $CLAUDE_CONFIG_DIR/settings.json, or
// ~/.claude/settings.json when the variable is unset
func DefaultClaudeSettingsPath() (string, error) {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "settings.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}
