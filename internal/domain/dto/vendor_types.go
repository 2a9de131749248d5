package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/language"
)

// LocalizedText decodes vendor text that is either a plain string or a locale map
type LocalizedText struct {
	plain  string
	values map[string]string
}

// NewLocalizedText builds a locale map value
func NewLocalizedText(values map[string]string) LocalizedText {
	return LocalizedText{values: values}
}

// UnmarshalJSON accepts "text", {"es": "text", ...} or null
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = LocalizedText{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = LocalizedText{plain: s}
		return nil
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("localized text must be a string or a locale map: %w", err)
	}
	*t = LocalizedText{values: values}
	return nil
}

// MarshalJSON writes the value back in its original shape
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.values != nil {
		return json.Marshal(t.values)
	}
	return json.Marshal(t.plain)
}

// Pick returns the text for the preferred locale, then English, then the
// first non-empty locale in key order. Plain strings are returned as is.
func (t LocalizedText) Pick(preferred language.Tag) string {
	if len(t.values) == 0 {
		return t.plain
	}

	keys := make([]string, 0, len(t.values))
	for k, v := range t.values {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	supported := make([]language.Tag, 0, len(keys))
	supportedKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		supportedKeys = append(supportedKeys, k)
	}
	if len(supported) > 0 {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(preferred, language.English)
		if conf != language.No {
			return t.values[supportedKeys[idx]]
		}
	}
	return t.values[keys[0]]
}

// FlexibleID decodes vendor identifiers sent either as numbers or strings
type FlexibleID string

// UnmarshalJSON accepts 12, "12" or null
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexibleID(n.String())
	return nil
}

// NameField decodes a name sent either as a string or as {"name": "..."}
type NameField string

// UnmarshalJSON accepts "name", {"name": "..."} or null
func (n *NameField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NameField(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("name must be a string or an object with a name: %w", err)
	}
	*n = NameField(obj.Name)
	return nil
}
