package validation

import (
	"fmt"

	"claudewarp/config/models"
	"claudewarp/internal/utils"
)

// Error describes a single invalid field
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Errorf creates an *Error for field
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validator validates and normalizes proxy profiles
type Validator struct {
	input *InputValidator
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{input: NewInputValidator()}
}

// Normalize returns p with its URL, tags and model names cleaned up.
// It never fails; call ValidateProfile on the result.
func (v *Validator) Normalize(p models.Profile) models.Profile {
	p.BaseURL = utils.NormalizeURL(p.BaseURL)
	p.Tags = NormalizeTags(p.Tags)
	p.BigModel = NormalizeModel(p.BigModel)
	p.SmallModel = NormalizeModel(p.SmallModel)
	return p
}

// ValidateProfile validates a user profile
func (v *Validator) ValidateProfile(p models.Profile) error {
	if err := v.input.ValidateName(p.Name); err != nil {
		return err
	}

	if p.BaseURL == "" {
		return Errorf("base_url", "base URL cannot be empty")
	}
	if err := v.input.ValidateURL(p.BaseURL); err != nil {
		return err
	}

	// 至少需要一种认证方式
	if p.Credential.IsZero() {
		return Errorf("credential", "API key and auth token cannot both be empty")
	}
	if err := v.input.ValidateSecret(p.Credential.Kind.String(), p.Credential.Value); err != nil {
		return err
	}

	for _, model := range []string{p.BigModel, p.SmallModel} {
		if err := v.input.ValidateModelName(model); err != nil {
			return err
		}
	}

	return nil
}
