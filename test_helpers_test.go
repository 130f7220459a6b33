package sdk

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// testToken builds an unsigned three-segment token whose claims segment
// carries the given exp. The signature segment is junk; nothing in the
// client verifies it.
func testToken(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims, _ := json.Marshal(map[string]any{"uid": "u1", "exp": exp.Unix()})
	payload := base64.RawURLEncoding.EncodeToString(claims)
	return fmt.Sprintf("%s.%s.sig", header, payload)
}
