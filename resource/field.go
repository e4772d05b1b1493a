// Package resource declares the field-definition graph and the resource
// action pipeline that tools bind to. A Resource plays the role the target
// application's view layer plays for plain HTTP callers: it owns its
// handlers, its data store, and its authentication/permission/throttle
// policy; this package only defines the contract the adapter drives.
package resource

// Kind enumerates the supported field value shapes. Unknown kinds fail tool
// registration rather than degrading to a permissive schema.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindDate
	KindDateTime
	KindTime
	// KindIdentifier is a primary-key or slug reference to another record.
	KindIdentifier
	// KindDecimal is an exact decimal carried as a string on the wire.
	KindDecimal
	// KindObject is a nested structure described by Field.Fields.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindTime:
		return "time"
	case KindIdentifier:
		return "identifier"
	case KindDecimal:
		return "decimal"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Format refines a string kind with a validation hint the caller can apply
// before sending.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
	FormatURL
	FormatUUID
	FormatIPv4
	FormatIPv6
	FormatIPAny
)

// Choice is one enumerated value with its display label.
type Choice struct {
	Value string
	Label string
}

// Field describes one input field of a resource. The zero value is an
// optional, non-blank, non-null string field with no constraints.
type Field struct {
	Name string
	Kind Kind

	// Label and HelpText are the field's human documentation; both are
	// folded into the generated schema node.
	Label    string
	HelpText string

	// Required marks the field as mandatory input. It is independent of
	// Default: a field can carry a default and still be required.
	Required bool
	// ReadOnly fields are output-only and excluded from input schemas.
	ReadOnly bool
	// AllowBlank permits the empty string for string-shaped kinds.
	AllowBlank bool
	// AllowNull permits JSON null.
	AllowNull bool

	// Default is advertised in the schema; it is never injected into
	// arguments by this library.
	Default interface{}

	// Constraints, copied verbatim into the schema.
	MinLength *int
	MaxLength *int
	MinValue  *float64
	MaxValue  *float64
	Pattern   string
	Format    Format

	// Choices restricts the field to an enumerated value set.
	Choices []Choice

	// DecimalPlaces/MaxDigits document precision for KindDecimal.
	DecimalPlaces *int
	MaxDigits     *int

	// RelatedResource names the record type a KindIdentifier points at,
	// used only for the generated description.
	RelatedResource string

	// Fields holds the nested definition for KindObject.
	Fields []Field

	// Many wraps the field in an array of the declared shape. AllowEmpty
	// controls whether a zero-length array is acceptable.
	Many       bool
	AllowEmpty bool
}

// IntPtr, FloatPtr are small helpers for constraint literals.
func IntPtr(v int) *int           { return &v }
func FloatPtr(v float64) *float64 { return &v }
