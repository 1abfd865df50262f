package session

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// Strategy names the extractor that produced a SessionUser.
type Strategy string

const (
	StrategyNone     Strategy = ""
	StrategyDirect   Strategy = "direct"
	StrategyUser     Strategy = "user"
	StrategyDataUser Strategy = "data.user"
	StrategyMetadata Strategy = "user_metadata"
	StrategyPlain    Strategy = "plain"
)

// maxPlainNameLen bounds raw non-JSON values accepted as a display name.
// It counts runes, so a name of astral characters such as emoji may hold up
// to twice as many as a browser's UTF-16 length check would allow.
const maxPlainNameLen = 80

var (
	usernameFields = []string{"username", "user_name", "displayName", "display_name", "name", "full_name", "fullName"}
	emailFields    = []string{"email", "mail"}
	metadataFields = []string{"username", "user_name", "full_name", "name", "display_name"}
)

// extractor is one shape a decoded session record may have.
type extractor struct {
	name Strategy
	fn   func(parsed any) *domain.SessionUser
}

// jsonExtractors are tried in order against the decoded value.
var jsonExtractors = []extractor{
	{StrategyDirect, extractDirect},
	{StrategyUser, extractUser},
	{StrategyDataUser, extractDataUser},
	{StrategyMetadata, extractMetadata},
}

// Parse derives a SessionUser from a raw stored value and reports which
// strategy produced it. A nil user comes with StrategyNone.
func Parse(raw string) (*domain.SessionUser, Strategy) {
	if raw == "" {
		return nil, StrategyNone
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		for _, ex := range jsonExtractors {
			if u := ex.fn(parsed); u != nil {
				return u, ex.name
			}
		}
	}

	if u := extractPlain(raw); u != nil {
		return u, StrategyPlain
	}
	return nil, StrategyNone
}

// ParseRaw is Parse without the strategy.
func ParseRaw(raw string) *domain.SessionUser {
	u, _ := Parse(raw)
	return u
}

// Serialize renders u in the flat format the storefront writes on login.
func Serialize(u domain.SessionUser) string {
	b, _ := json.Marshal(u)
	return string(b)
}

func extractDirect(parsed any) *domain.SessionUser {
	return pickUser(asObject(parsed))
}

func extractUser(parsed any) *domain.SessionUser {
	return pickUser(child(asObject(parsed), "user"))
}

func extractDataUser(parsed any) *domain.SessionUser {
	return pickUser(child(child(asObject(parsed), "data"), "user"))
}

// extractMetadata reads the identity the hosted auth layer keeps under
// user.user_metadata. Email and the role fallback come from user itself.
func extractMetadata(parsed any) *domain.SessionUser {
	user := child(asObject(parsed), "user")
	if user == nil || !truthy(user["user_metadata"]) {
		return nil
	}
	meta := asObject(user["user_metadata"])

	username := firstString(meta, metadataFields)
	email := stringField(user, "email")

	roleRaw, ok := meta["role"]
	if !ok || roleRaw == nil {
		roleRaw = user["role"]
	}
	role := domain.NormalizeRole(asString(roleRaw))

	return build(username, email, role)
}

func extractPlain(raw string) *domain.SessionUser {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return nil
	}
	if s == "" || utf8.RuneCountInString(s) > maxPlainNameLen {
		return nil
	}
	return &domain.SessionUser{Username: s}
}

// pickUser is the generic object extraction shared by the first three strategies.
func pickUser(obj map[string]any) *domain.SessionUser {
	if obj == nil {
		return nil
	}
	username := firstString(obj, usernameFields)
	email := firstString(obj, emailFields)
	role := domain.NormalizeRole(stringField(obj, "role"))
	return build(username, email, role)
}

func build(username, email string, role domain.Role) *domain.SessionUser {
	if username == "" && email != "" {
		username = usernameFromEmail(email)
	}
	if username == "" {
		return nil
	}
	return &domain.SessionUser{Username: username, Email: email, Role: role}
}

// usernameFromEmail returns the local part of email. An address without a
// local part ("@host") or without "@" is returned whole.
func usernameFromEmail(email string) string {
	e := strings.TrimSpace(email)
	if at := strings.Index(e, "@"); at > 0 {
		return e[:at]
	}
	return e
}

func firstString(obj map[string]any, fields []string) string {
	for _, f := range fields {
		if s := stringField(obj, f); s != "" {
			return s
		}
	}
	return ""
}

func stringField(obj map[string]any, field string) string {
	if obj == nil {
		return ""
	}
	return asString(obj[field])
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func child(obj map[string]any, key string) map[string]any {
	if obj == nil {
		return nil
	}
	return asObject(obj[key])
}

// truthy mirrors how the stored records were checked when they were written.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	}
	return true
}
