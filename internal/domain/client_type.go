package domain

// ClientType is a closed set of client variants. Each variant carries the
// OAuth grant types the identity provider assigns to clients of that kind.
type ClientType struct {
	name       string
	value      int
	grantTypes []string
}

var (
	// ClientTypeMachine is a confidential client using the client-credentials flow
	ClientTypeMachine = ClientType{name: "machine", value: 1, grantTypes: []string{"client_credentials"}}

	// ClientTypeAuthCode is an interactive client using the authorization-code flow
	ClientTypeAuthCode = ClientType{name: "auth_code", value: 2, grantTypes: []string{"authorization_code", "refresh_token"}}
)

var clientTypes = []ClientType{ClientTypeMachine, ClientTypeAuthCode}

// ClientTypes returns all known client type variants
func ClientTypes() []ClientType {
	out := make([]ClientType, len(clientTypes))
	copy(out, clientTypes)
	return out
}

// ClientTypeFromName looks a variant up by its name. The second return is
// false for unknown names; no lookup ever panics.
func ClientTypeFromName(name string) (ClientType, bool) {
	for _, t := range clientTypes {
		if t.name == name {
			return t, true
		}
	}
	return ClientType{}, false
}

// ClientTypeFromValue looks a variant up by its stored integer value
func ClientTypeFromValue(value int) (ClientType, bool) {
	for _, t := range clientTypes {
		if t.value == value {
			return t, true
		}
	}
	return ClientType{}, false
}

// Name returns the string form of the variant
func (t ClientType) Name() string {
	return t.name
}

// Value returns the stored integer form of the variant
func (t ClientType) Value() int {
	return t.value
}

// GrantTypes returns the grant types associated with the variant
func (t ClientType) GrantTypes() []string {
	out := make([]string, len(t.grantTypes))
	copy(out, t.grantTypes)
	return out
}

// IsMachine reports whether the variant uses the client-credentials flow
func (t ClientType) IsMachine() bool {
	return t.value == ClientTypeMachine.value
}

// IsZero reports whether the variant is the unset zero value
func (t ClientType) IsZero() bool {
	return t.value == 0
}

func (t ClientType) String() string {
	return t.name
}
