package testenv

import "encoding/json"

// ToJSON marshals a value as compact JSON, for assertions on encoded forms.
func ToJSON(v any) string {
	j, e := json.Marshal(v)
	if e != nil {
		return "ERROR: " + e.Error()
	}
	return string(j)
}
