package service_test

import "encoding/json"

// jsonString encodes s as a JSON string literal, the way the API ships the
// extracted-entity payload.
func jsonString(s string) (json.RawMessage, error) {
	return json.Marshal(s)
}
