package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
)

// Length ceilings per entity field. These, together with the message
// constants below, are part of the observable API contract.
const (
	AppNameMaxLength            = 100
	AppDescriptionMaxLength     = 140
	ClientNameMaxLength         = 100
	ClientDescriptionMaxLength  = 140
	ResourceServerNameMaxLength = 200
	AudienceMaxLength           = 280
	ProductNameMaxLength        = 100
	ProductDescriptionMaxLength = 1000
	ScopeValueMaxLength         = 280
	ScopeDescriptionMaxLength   = 500

	TokenLifetimeMin = 60
	TokenLifetimeMax = 86400

	PageSizeMin = 1
	PageSizeMax = 100
)

// Validation messages. Preserved verbatim for API compatibility.
const (
	MsgRequired           = "Required"
	MsgTokenLifetimeRange = "Must be between 60 and 86,400 (inclusive)"
	MsgPageSizeRange      = "Must be between 1 and 100 (inclusive)"
	MsgMachineNoURLs      = "Not allowed for machine clients"
	MsgCallbackRequired   = "At least one callback URL is required"
	MsgLoginURLNotHTTPS   = "Must be an https URL"
	MsgUnknownClientType  = "Unknown client type"
	MsgCursorNotNegative  = "Must not be negative"
)

// MsgMaxLength renders the shared length-ceiling message for a given limit
func MsgMaxLength(limit int) string {
	return fmt.Sprintf("Exceeds maximum length of %d characters", limit)
}

// ValidateApp checks the application's own fields
func ValidateApp(name, description string) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgRequired})
	} else if utf8.RuneCountInString(name) > AppNameMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgMaxLength(AppNameMaxLength)})
	}
	if utf8.RuneCountInString(description) > AppDescriptionMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: MsgMaxLength(AppDescriptionMaxLength)})
	}
	return fields
}

// ValidateClientFields checks the name, description and the type-dependent
// URL rules shared by Client and ProductClient:
//   - machine clients forbid callback and signout URLs
//   - auth-code clients require at least one callback URL and, when a login
//     URL is present, it must be https
func ValidateClientFields(name, description string, clientType ClientType, loginURL string, callbackURLs, signoutURLs []string) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgRequired})
	} else if utf8.RuneCountInString(name) > ClientNameMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgMaxLength(ClientNameMaxLength)})
	}
	if utf8.RuneCountInString(description) > ClientDescriptionMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: MsgMaxLength(ClientDescriptionMaxLength)})
	}

	if clientType.IsZero() {
		fields = append(fields, apperrors.FieldError{Field: "type", Message: MsgUnknownClientType})
		return fields
	}

	if clientType.IsMachine() {
		if len(callbackURLs) > 0 {
			fields = append(fields, apperrors.FieldError{Field: "callback_urls", Message: MsgMachineNoURLs})
		}
		if len(signoutURLs) > 0 {
			fields = append(fields, apperrors.FieldError{Field: "signout_urls", Message: MsgMachineNoURLs})
		}
		return fields
	}

	if len(callbackURLs) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "callback_urls", Message: MsgCallbackRequired})
	}
	if loginURL != "" && !strings.HasPrefix(loginURL, "https://") {
		fields = append(fields, apperrors.FieldError{Field: "login_url", Message: MsgLoginURLNotHTTPS})
	}
	return fields
}

// ValidateResourceServer checks name, audience, token lifetime bounds and scopes
func ValidateResourceServer(name, audience string, tokenLifetime int, scopes []Scope) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgRequired})
	} else if utf8.RuneCountInString(name) > ResourceServerNameMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgMaxLength(ResourceServerNameMaxLength)})
	}
	if audience == "" {
		fields = append(fields, apperrors.FieldError{Field: "audience", Message: MsgRequired})
	} else if utf8.RuneCountInString(audience) > AudienceMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "audience", Message: MsgMaxLength(AudienceMaxLength)})
	}
	if tokenLifetime < TokenLifetimeMin || tokenLifetime > TokenLifetimeMax {
		fields = append(fields, apperrors.FieldError{Field: "token_lifetime", Message: MsgTokenLifetimeRange})
	}
	fields = append(fields, ValidateScopes(scopes)...)
	return fields
}

// ValidateScopes checks every scope in a set
func ValidateScopes(scopes []Scope) []apperrors.FieldError {
	var fields []apperrors.FieldError
	for i, scope := range scopes {
		if scope.Value == "" {
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scopes[%d].value", i), Message: MsgRequired})
		} else if utf8.RuneCountInString(scope.Value) > ScopeValueMaxLength {
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scopes[%d].value", i), Message: MsgMaxLength(ScopeValueMaxLength)})
		}
		if utf8.RuneCountInString(scope.Description) > ScopeDescriptionMaxLength {
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scopes[%d].description", i), Message: MsgMaxLength(ScopeDescriptionMaxLength)})
		}
	}
	return fields
}

// ValidateProduct checks the product's own fields
func ValidateProduct(name, description string) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgRequired})
	} else if utf8.RuneCountInString(name) > ProductNameMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: MsgMaxLength(ProductNameMaxLength)})
	}
	if utf8.RuneCountInString(description) > ProductDescriptionMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: MsgMaxLength(ProductDescriptionMaxLength)})
	}
	return fields
}

// ValidatePageRequest checks the pagination continuation token and page size
func ValidatePageRequest(cursor int64, pageSize int) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if cursor < 0 {
		fields = append(fields, apperrors.FieldError{Field: "cursor", Message: MsgCursorNotNegative})
	}
	if pageSize < PageSizeMin || pageSize > PageSizeMax {
		fields = append(fields, apperrors.FieldError{Field: "page_size", Message: MsgPageSizeRange})
	}
	return fields
}
