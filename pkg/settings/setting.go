package settings

import "github.com/dmitrymomot/modkit/pkg/buildinfo"

// Kind identifies a setting variant.
type Kind uint8

const (
	KindBool Kind = iota
	KindString
	KindColor
	KindEnum
	KindEnumList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	case KindEnum:
		return "enum"
	case KindEnumList:
		return "enum_list"
	default:
		return "unknown"
	}
}

// Setting is implemented only by the variants in this package.
type Setting interface {
	Meta() Meta
	Kind() Kind
	sealed()
}

// Meta is shared by every variant.
type Meta struct {
	// Name is the stable key used for persistence.
	Name        string
	DisplayName string
	Description string
	// Builds limits display to the given builds. Empty means every build.
	Builds         buildinfo.Range
	Hidden         bool
	Header         string
	SeparatorAbove bool
	SpacerAbove    bool
}

// Label returns DisplayName, or Name when no display name is set.
func (m Meta) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// Option configures Meta.
type Option func(*Meta)

func WithDisplayName(name string) Option  { return func(m *Meta) { m.DisplayName = name } }
func WithDescription(text string) Option  { return func(m *Meta) { m.Description = text } }
func WithBuilds(r buildinfo.Range) Option { return func(m *Meta) { m.Builds = r } }
func WithHeader(text string) Option       { return func(m *Meta) { m.Header = text } }
func Hidden() Option                      { return func(m *Meta) { m.Hidden = true } }
func WithSeparator() Option               { return func(m *Meta) { m.SeparatorAbove = true } }
func WithSpacer() Option                  { return func(m *Meta) { m.SpacerAbove = true } }

func newMeta(name string, opts []Option) Meta {
	m := Meta{Name: name}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Accessor reads and writes a value owned by a feature.
type Accessor[T any] struct {
	Get func() T
	Set func(T)
}

// Ref binds an accessor to a variable.
func Ref[T any](p *T) Accessor[T] {
	return Accessor[T]{
		Get: func() T { return *p },
		Set: func(v T) { *p = v },
	}
}
