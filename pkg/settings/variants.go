package settings

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength bounds String settings without an explicit limit.
const DefaultMaxLength = 50

// Bool is an on/off setting.
type Bool struct {
	meta Meta
	acc  Accessor[bool]
}

func NewBool(name string, acc Accessor[bool], opts ...Option) *Bool {
	return &Bool{meta: newMeta(name, opts), acc: acc}
}

func (s *Bool) Meta() Meta { return s.meta }
func (s *Bool) Kind() Kind { return KindBool }
func (s *Bool) Get() bool  { return s.acc.Get() }
func (s *Bool) Set(v bool) { s.acc.Set(v) }
func (s *Bool) sealed()    {}

// String is a free-text setting with a length limit counted in characters.
type String struct {
	meta      Meta
	acc       Accessor[string]
	maxLength int
}

func NewString(name string, maxLength int, acc Accessor[string], opts ...Option) *String {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &String{meta: newMeta(name, opts), acc: acc, maxLength: maxLength}
}

func (s *String) Meta() Meta     { return s.meta }
func (s *String) Kind() Kind     { return KindString }
func (s *String) MaxLength() int { return s.maxLength }
func (s *String) Get() string    { return s.acc.Get() }
func (s *String) sealed()        {}

func (s *String) Set(v string) error {
	if n := utf8.RuneCountInString(v); n > s.maxLength {
		return fmt.Errorf("%w: %d > %d", ErrValueTooLong, n, s.maxLength)
	}
	s.acc.Set(v)
	return nil
}

// Color is an RGBA color setting.
type Color struct {
	meta Meta
	acc  Accessor[RGBA]
}

func NewColor(name string, acc Accessor[RGBA], opts ...Option) *Color {
	return &Color{meta: newMeta(name, opts), acc: acc}
}

func (s *Color) Meta() Meta { return s.meta }
func (s *Color) Kind() Kind { return KindColor }
func (s *Color) Get() RGBA  { return s.acc.Get() }
func (s *Color) Set(v RGBA) { s.acc.Set(v) }
func (s *Color) sealed()    {}

// Enum selects exactly one of a fixed, ordered option list.
type Enum struct {
	meta    Meta
	acc     Accessor[string]
	options []string
}

func NewEnum(name string, options []string, acc Accessor[string], opts ...Option) *Enum {
	return &Enum{meta: newMeta(name, opts), acc: acc, options: slices.Clone(options)}
}

func (s *Enum) Meta() Meta        { return s.meta }
func (s *Enum) Kind() Kind        { return KindEnum }
func (s *Enum) Options() []string { return slices.Clone(s.options) }
func (s *Enum) Get() string       { return s.acc.Get() }
func (s *Enum) sealed()           {}

func (s *Enum) Set(v string) error {
	if !slices.Contains(s.options, v) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, v)
	}
	s.acc.Set(v)
	return nil
}

// EnumList selects any subset of a fixed, ordered option list.
type EnumList struct {
	meta    Meta
	acc     Accessor[[]string]
	options []string
}

func NewEnumList(name string, options []string, acc Accessor[[]string], opts ...Option) *EnumList {
	return &EnumList{meta: newMeta(name, opts), acc: acc, options: slices.Clone(options)}
}

func (s *EnumList) Meta() Meta        { return s.meta }
func (s *EnumList) Kind() Kind        { return KindEnumList }
func (s *EnumList) Options() []string { return slices.Clone(s.options) }
func (s *EnumList) sealed()           {}

// Get returns the selected options in option order.
func (s *EnumList) Get() []string {
	selected := s.acc.Get()
	out := make([]string, 0, len(selected))
	for _, o := range s.options {
		if slices.Contains(selected, o) {
			out = append(out, o)
		}
	}
	return out
}

// Set replaces the selection. Duplicates are collapsed.
func (s *EnumList) Set(v []string) error {
	for _, o := range v {
		if !slices.Contains(s.options, o) {
			return fmt.Errorf("%w: %q", ErrUnknownOption, o)
		}
	}
	out := make([]string, 0, len(v))
	for _, o := range s.options {
		if slices.Contains(v, o) {
			out = append(out, o)
		}
	}
	s.acc.Set(out)
	return nil
}

// Toggle adds or removes one option.
func (s *EnumList) Toggle(option string) error {
	cur := s.Get()
	if i := slices.Index(cur, option); i >= 0 {
		return s.Set(slices.Delete(cur, i, i+1))
	}
	return s.Set(append(cur, option))
}

const (
	labelLimit = 36
	noneLabel  = "[None]"
)

// Label renders the selection for a menu entry.
func (s *EnumList) Label() string {
	cur := s.Get()
	if len(cur) == 0 {
		return noneLabel
	}
	text := strings.Join(cur, ", ")
	if utf8.RuneCountInString(text) > labelLimit {
		text = string([]rune(text)[:labelLimit]) + " ..."
	}
	return text
}
