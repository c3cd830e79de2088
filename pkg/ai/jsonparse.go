package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kisan/pkg/validate"
)

var errNoObject = errors.New("no JSON object in reply")

// ExtractObject strips Markdown code fences and returns the text between
// the first '{' and the last '}'.
func ExtractObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:] // language tag line
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", errNoObject
	}
	return s[start : end+1], nil
}

// DecodeStrict parses a model reply into dst. Unknown fields, trailing
// data and missing required fields are all errors.
func DecodeStrict(raw string, dst any) error {
	obj, err := ExtractObject(raw)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if dec.More() {
		return errors.New("decode reply: trailing data")
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("reply failed validation: %w", err)
	}
	return nil
}
