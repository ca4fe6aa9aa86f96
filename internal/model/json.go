package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Form values arrive as strings in most backup files and as numbers in some,
// so decoding accepts either for the loose fields. JSON and YAML backups
// follow the same rules.

func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var aux struct {
		plain
		Calories json.RawMessage `json:"calories"`
		Size     json.RawMessage `json:"size"`
		Comments json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)
	var err error
	if e.Calories, err = looseText(aux.Calories); err != nil {
		return fmt.Errorf("calories: %w", err)
	}
	if e.Size, err = looseText(aux.Size); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if e.Comments, err = looseText(aux.Comments); err != nil {
		return fmt.Errorf("comments: %w", err)
	}
	return nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var aux struct {
		plain
		Age    json.RawMessage `json:"age"`
		Height json.RawMessage `json:"height"`
		Weight json.RawMessage `json:"weight"`
		DCR    json.RawMessage `json:"dcr"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Profile(aux.plain)
	var err error
	if p.Age, err = looseNumber(aux.Age); err != nil {
		return fmt.Errorf("age: %w", err)
	}
	if p.Height, err = looseNumber(aux.Height); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if p.Weight, err = looseNumber(aux.Weight); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	if p.DCR, err = looseNumber(aux.DCR); err != nil {
		return fmt.Errorf("dcr: %w", err)
	}
	return nil
}

func looseText(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("expected string or number, got %s", raw)
		}
		s = n.String()
	}
	return OptionalText(s), nil
}

func looseNumber(raw json.RawMessage) (*float64, error) {
	text, err := looseText(raw)
	if err != nil {
		return nil, err
	}
	return parseNumber(text)
}

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	type plain Entry
	rest, loose := splitLoose(value, "calories", "size", "comments")
	var p plain
	if err := rest.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	var err error
	if e.Calories, err = looseYAMLText(loose["calories"]); err != nil {
		return fmt.Errorf("calories: %w", err)
	}
	if e.Size, err = looseYAMLText(loose["size"]); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if e.Comments, err = looseYAMLText(loose["comments"]); err != nil {
		return fmt.Errorf("comments: %w", err)
	}
	return nil
}

func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	type plain Profile
	rest, loose := splitLoose(value, "age", "height", "weight", "dcr")
	var pl plain
	if err := rest.Decode(&pl); err != nil {
		return err
	}
	*p = Profile(pl)
	var err error
	if p.Age, err = looseYAMLNumber(loose["age"]); err != nil {
		return fmt.Errorf("age: %w", err)
	}
	if p.Height, err = looseYAMLNumber(loose["height"]); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if p.Weight, err = looseYAMLNumber(loose["weight"]); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	if p.DCR, err = looseYAMLNumber(loose["dcr"]); err != nil {
		return fmt.Errorf("dcr: %w", err)
	}
	return nil
}

// splitLoose pulls the named keys out of a mapping node. The remaining
// mapping decodes through the struct tags as usual.
func splitLoose(value *yaml.Node, keys ...string) (*yaml.Node, map[string]*yaml.Node) {
	if value.Kind != yaml.MappingNode {
		return value, nil
	}
	rest := *value
	rest.Content = make([]*yaml.Node, 0, len(value.Content))
	loose := make(map[string]*yaml.Node, len(keys))
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if slices.Contains(keys, k.Value) {
			loose[k.Value] = v
			continue
		}
		rest.Content = append(rest.Content, k, v)
	}
	return &rest, loose
}

func looseYAMLText(n *yaml.Node) (*string, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("expected string or number at line %d", n.Line)
	}
	if n.Tag == "!!null" {
		return nil, nil
	}
	return OptionalText(n.Value), nil
}

func looseYAMLNumber(n *yaml.Node) (*float64, error) {
	text, err := looseYAMLText(n)
	if err != nil {
		return nil, err
	}
	return parseNumber(text)
}

func parseNumber(text *string) (*float64, error) {
	if text == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", *text)
	}
	return &v, nil
}

// OptionalText maps an empty or blank value to nil.
func OptionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
