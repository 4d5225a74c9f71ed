package web

import (
	"encoding/json"
	"html/template"
)

// templateJSON serializes chart data for the inline chart bootstrap.
func templateJSON(v interface{}) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}
