package validation

import (
	"regexp"
	"strings"
	"unicode"

	"claudewarp/config/models"
	"claudewarp/internal/utils"
)

// MaxNameLength is the longest accepted profile name
const MaxNameLength = 50

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// InputValidator validates user input
type InputValidator struct {
}

// NewInputValidator creates a new InputValidator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateName checks if a profile name is valid for a user profile
func (iv *InputValidator) ValidateName(name string) error {
	if name == "" {
		return Errorf("name", "name cannot be empty")
	}
	if name == models.BuiltinName {
		return Errorf("name", "'%s' is a reserved name", models.BuiltinName)
	}
	if len(name) > MaxNameLength {
		return Errorf("name", "name is too long (max %d characters)", MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return Errorf("name", "name may only contain letters, digits, '-' and '_'")
	}
	return nil
}

// ValidateURL checks if a base URL is valid
func (iv *InputValidator) ValidateURL(url string) error {
	if !utils.ValidateURL(url) {
		return Errorf("base_url", "invalid URL format: %s (must be http:// or https:// with a host)", url)
	}
	return nil
}

// ValidateSecret checks an API key or auth token
func (iv *InputValidator) ValidateSecret(field, value string) error {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return Errorf(field, "must not contain whitespace")
	}
	return nil
}

// ValidateModelName checks an optional model override
func (iv *InputValidator) ValidateModelName(model string) error {
	if model == "" {
		return nil
	}
	if strings.ContainsAny(model, "<>\"'&\\") || strings.IndexFunc(model, unicode.IsSpace) >= 0 {
		return Errorf("model", "model name '%s' contains invalid characters", model)
	}
	return nil
}

// NormalizeTags trims tags, drops empties and removes duplicates while preserving order
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		trimmed := strings.TrimSpace(t)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result
}

// NormalizeModel trims a model name
func NormalizeModel(model string) string {
	return strings.TrimSpace(model)
}

// SplitTags parses a comma-separated tag list
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
