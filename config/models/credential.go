package models

// CredentialKind identifies which credential a profile authenticates with
type CredentialKind int

const (
	// CredentialNone means no credential is configured
	CredentialNone CredentialKind = iota
	// CredentialAPIKey is sent as an API key
	CredentialAPIKey
	// CredentialAuthToken is sent as a bearer auth token
	CredentialAuthToken
)

// String returns the persisted field name for the kind
func (k CredentialKind) String() string {
	switch k {
	case CredentialAPIKey:
		return "api_key"
	case CredentialAuthToken:
		return "auth_token"
	default:
		return "none"
	}
}

// Credential holds exactly one of an API key or an auth token
type Credential struct {
	Kind  CredentialKind
	Value string
}

// APIKey creates an API key credential
func APIKey(v string) Credential {
	if v == "" {
		return Credential{}
	}
	return Credential{Kind: CredentialAPIKey, Value: v}
}

// AuthToken creates an auth token credential
func AuthToken(v string) Credential {
	if v == "" {
		return Credential{}
	}
	return Credential{Kind: CredentialAuthToken, Value: v}
}

// NewCredential builds a credential from the two loosely typed fields.
// The auth token wins when both are set.
func NewCredential(apiKey, authToken string) Credential {
	if authToken != "" {
		return AuthToken(authToken)
	}
	return APIKey(apiKey)
}

// IsZero reports whether no credential is configured
func (c Credential) IsZero() bool {
	return c.Kind == CredentialNone || c.Value == ""
}

// Merge applies optional replacements for either field. Setting one field
// clears the other; setting a field to "" clears it only if it is the one in use.
func (c Credential) Merge(apiKey, authToken *string) Credential {
	switch {
	case apiKey != nil && authToken != nil:
		return NewCredential(*apiKey, *authToken)
	case authToken != nil:
		if *authToken != "" {
			return AuthToken(*authToken)
		}
		if c.Kind == CredentialAuthToken {
			return Credential{}
		}
	case apiKey != nil:
		if *apiKey != "" {
			return APIKey(*apiKey)
		}
		if c.Kind == CredentialAPIKey {
			return Credential{}
		}
	}
	return c
}
