package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"bookingHub/internal/shared/normalization"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
	kindFloat
	kindStringList
	kindObject
)

// String returns the type name used in "is not a valid" messages.
func (k fieldKind) String() string {
	switch k {
	case kindInteger:
		return "Integer"
	case kindFloat:
		return "Float"
	case kindStringList:
		return "Array"
	case kindObject:
		return "Hash"
	default:
		return "String"
	}
}

// fieldRule declares how one payload field is checked and coerced.
type fieldRule struct {
	name           string
	kind           fieldKind
	optional       bool
	allowed        []string
	pattern        *regexp.Regexp
	patternMessage string
	minItems       int
	precision      int
	fields         schema
}

// schema is an ordered rule list for one object level of a payload.
type schema []fieldRule

// values holds coerced field values: string, int, float64, []string or nested values.
type values map[string]any

// validate checks raw against the schema and returns the coerced values.
// Passes run in a fixed order and the first failure wins: presence and type,
// enum membership, patterns, then nested objects (recursively, same order).
func (s schema) validate(raw map[string]any) (values, error) {
	out := make(values, len(s))

	for _, rule := range s {
		if rule.kind == kindObject {
			continue
		}
		value, present := raw[rule.name]
		if !present || value == nil {
			if rule.optional {
				if present {
					out[rule.name] = ""
				}
				continue
			}
			return nil, errRequired(rule.name)
		}
		coerced, err := rule.coerce(value)
		if err != nil {
			return nil, err
		}
		out[rule.name] = coerced
	}

	for _, rule := range s {
		if len(rule.allowed) == 0 {
			continue
		}
		if value, ok := out[rule.name].(string); ok && !slices.Contains(rule.allowed, value) {
			return nil, errNotWithin(rule.name, rule.allowed)
		}
	}

	for _, rule := range s {
		if err := rule.checkPattern(out[rule.name]); err != nil {
			return nil, err
		}
	}

	for _, rule := range s {
		if rule.kind != kindObject {
			continue
		}
		value, present := raw[rule.name]
		if !present || value == nil {
			return nil, errRequired(rule.name)
		}
		nestedRaw, ok := value.(map[string]any)
		if !ok {
			return nil, errInvalidType(rule.name, normalization.Describe(value), rule.kind.String())
		}
		if len(nestedRaw) == 0 {
			return nil, errBlank(rule.name)
		}
		nested, err := rule.fields.validate(nestedRaw)
		if err != nil {
			return nil, err
		}
		out[rule.name] = nested
	}

	return out, nil
}

func (r fieldRule) coerce(value any) (any, error) {
	invalid := func(v any) error {
		return errInvalidType(r.name, normalization.Describe(v), r.kind.String())
	}

	switch r.kind {
	case kindInteger:
		if normalization.IsBlank(value) {
			return nil, errBlank(r.name)
		}
		n, ok := normalization.CoerceInt(value)
		if !ok {
			return nil, invalid(value)
		}
		return n, nil
	case kindFloat:
		if normalization.IsBlank(value) {
			return nil, errBlank(r.name)
		}
		f, ok := normalization.CoerceFloat64(value)
		if !ok {
			return nil, invalid(value)
		}
		if r.precision > 0 {
			f = normalization.RoundTo(f, r.precision)
		}
		return f, nil
	case kindStringList:
		items := normalization.AsInterfaceSlice(value)
		if items == nil {
			return nil, invalid(value)
		}
		list := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := normalization.CoerceString(item)
			if !ok {
				return nil, errInvalidType(fmt.Sprintf("%s[%d]", r.name, i), normalization.Describe(item), kindString.String())
			}
			list = append(list, s)
		}
		return list, nil
	default:
		s, ok := normalization.CoerceString(value)
		if !ok {
			return nil, invalid(value)
		}
		if !r.optional && strings.TrimSpace(s) == "" {
			return nil, errBlank(r.name)
		}
		return s, nil
	}
}

func (r fieldRule) checkPattern(value any) error {
	switch typed := value.(type) {
	case string:
		if r.pattern != nil && !r.pattern.MatchString(typed) {
			return r.patternError()
		}
	case []string:
		if len(typed) < r.minItems {
			return errTooFewEntries(r.name, r.minItems)
		}
		if r.pattern == nil {
			return nil
		}
		for _, item := range typed {
			if !r.pattern.MatchString(item) {
				return r.patternError()
			}
		}
	}
	return nil
}

func (r fieldRule) patternError() error {
	if r.patternMessage != "" {
		return &ParameterError{Field: r.name, Message: r.patternMessage}
	}
	return &ParameterError{Field: r.name, Message: fmt.Sprintf("Parameter %s must match format %s", r.name, r.pattern)}
}

func (v values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) optionalStr(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v values) integer(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v values) float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v values) strList(name string) []string {
	list, _ := v[name].([]string)
	return list
}

func (v values) object(name string) values {
	nested, _ := v[name].(values)
	return nested
}
