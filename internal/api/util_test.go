package api

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateJoinCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := generateJoinCode()
		if !joinCodeRegex.MatchString(code) {
			t.Fatalf("generated code %q does not match expected format", code)
		}
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	if got := normalizeJoinCode("  ab12cd34 "); got != "AB12CD34" {
		t.Fatalf("normalizeJoinCode = %q, want AB12CD34", got)
	}
}

func TestMarshalForContextRedactsForeignEmails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := &gin.Context{}
	c.Set("userEmail", "me@example.com")

	in := map[string]interface{}{
		"owner_email": "me@example.com",
		"players": []interface{}{
			map[string]interface{}{"email": "other@example.com", "name": "Other"},
		},
	}
	out, err := MarshalForContext(c, in)
	if err != nil {
		t.Fatalf("MarshalForContext: %v", err)
	}
	m := out.(map[string]interface{})
	if m["owner_email"] != "me@example.com" {
		t.Fatalf("own email should survive redaction, got %v", m["owner_email"])
	}
	player := m["players"].([]interface{})[0].(map[string]interface{})
	if _, ok := player["email"]; ok {
		t.Fatalf("foreign email should be redacted")
	}
	if player["name"] != "Other" {
		t.Fatalf("non-email fields must be preserved")
	}
}

func TestMarshalForContextNilContextRedactsAll(t *testing.T) {
	out, err := MarshalForContext(nil, map[string]interface{}{"email": "a@b.c"})
	if err != nil {
		t.Fatalf("MarshalForContext: %v", err)
	}
	if _, ok := out.(map[string]interface{})["email"]; ok {
		t.Fatalf("emails must be redacted when no session is present")
	}
}
