package valueobject

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ruudy-sib/boxcheck/internal/domain"
)

const (
	// ContainerNumberLength is the length of a normalized ISO 6346 container number.
	ContainerNumberLength = 11

	// prefixLength covers the owner code, category identifier and serial number.
	prefixLength = 10
)

var (
	containerNumberPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{7}$`)
	prefixPattern          = regexp.MustCompile(`^[A-Z]{4}[0-9]{6}$`)
)

// letterValues maps A..Z to their ISO 6346 numeric equivalents.
// Values start at 10 and skip multiples of 11.
var letterValues = [26]int{
	10, 12, 13, 14, 15, 16, 17, 18, 19, 20, // A-J
	21, 23, 24, 25, 26, 27, 28, 29, 30, 31, // K-T
	32, 34, 35, 36, 37, 38, // U-Z
}

// Category is the equipment category identifier (4th character).
type Category string

const (
	CategoryFreight    Category = "freight"
	CategoryDetachable Category = "detachable_equipment"
	CategoryTrailer    Category = "trailer_chassis"
	CategoryUnknown    Category = "unknown"
)

// Failure reasons reported by Diagnose.
const (
	ReasonFormat     = "format"
	ReasonCheckDigit = "check_digit"
)

// ContainerNumber is an immutable, validated ISO 6346 container number.
type ContainerNumber struct {
	value string
}

// Check is the outcome of validating a raw container number.
type Check struct {
	Raw        string
	Normalized string
	Valid      bool
	Reason     string

	// ExpectedCheckDigit is -1 when the input is not structurally well formed.
	ExpectedCheckDigit int
}

// NormalizeContainerNumber uppercases raw and removes whitespace anywhere in it.
// Other characters pass through unchanged.
func NormalizeContainerNumber(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return strings.ToUpper(stripped)
}

// IsValidContainerNumber reports whether raw, once normalized, is a well formed
// container number whose last digit matches the computed check digit.
func IsValidContainerNumber(raw string) bool {
	return Diagnose(raw).Valid
}

// Diagnose validates raw and explains the result.
func Diagnose(raw string) Check {
	normalized := NormalizeContainerNumber(raw)
	check := Check{
		Raw:                raw,
		Normalized:         normalized,
		ExpectedCheckDigit: -1,
	}

	if !containerNumberPattern.MatchString(normalized) {
		check.Reason = ReasonFormat
		return check
	}

	expected := checkDigit(normalized[:prefixLength])
	check.ExpectedCheckDigit = expected
	if int(normalized[prefixLength]-'0') != expected {
		check.Reason = ReasonCheckDigit
		return check
	}

	check.Valid = true
	return check
}

// ComputeCheckDigit returns the check digit for a 10 character prefix
// (owner code, category identifier and serial number). The prefix is
// normalized first.
func ComputeCheckDigit(prefix string) (int, error) {
	normalized := NormalizeContainerNumber(prefix)
	if !prefixPattern.MatchString(normalized) {
		return 0, fmt.Errorf("%w: prefix %q must be 4 letters followed by 6 digits", domain.ErrInvalidContainerNumber, prefix)
	}
	return checkDigit(normalized), nil
}

// ParseContainerNumber normalizes and validates raw.
func ParseContainerNumber(raw string) (ContainerNumber, error) {
	check := Diagnose(raw)
	if !check.Valid {
		return ContainerNumber{}, fmt.Errorf("%w: %q (%s)", domain.ErrInvalidContainerNumber, raw, check.Reason)
	}
	return ContainerNumber{value: check.Normalized}, nil
}

// OwnerCode returns the three letter owner code.
func (c ContainerNumber) OwnerCode() string {
	return c.value[:3]
}

// CategoryIdentifier returns the equipment category letter.
func (c ContainerNumber) CategoryIdentifier() string {
	return c.value[3:4]
}

// Category classifies the category identifier. Letters other than U, J
// and Z are structurally valid and classify as unknown.
func (c ContainerNumber) Category() Category {
	switch c.CategoryIdentifier() {
	case "U":
		return CategoryFreight
	case "J":
		return CategoryDetachable
	case "Z":
		return CategoryTrailer
	default:
		return CategoryUnknown
	}
}

// SerialNumber returns the six digit, zero padded serial number.
func (c ContainerNumber) SerialNumber() string {
	return c.value[4:prefixLength]
}

// CheckDigit returns the trailing check digit.
func (c ContainerNumber) CheckDigit() int {
	return int(c.value[prefixLength] - '0')
}

// String returns the normalized 11 character form.
func (c ContainerNumber) String() string {
	return c.value
}

// Equals checks equality with another ContainerNumber.
func (c ContainerNumber) Equals(other ContainerNumber) bool {
	return c.value == other.value
}

// checkDigit expects a prefix already matching prefixPattern.
func checkDigit(prefix string) int {
	digit := weightedSum(prefix) % 11
	if digit == 10 {
		return 0
	}
	return digit
}

// weightedSum weights the character at position i by 2^i.
func weightedSum(prefix string) int {
	sum := 0
	for i := 0; i < prefixLength; i++ {
		sum += charValue(prefix[i]) << i
	}
	return sum
}

func charValue(c byte) int {
	if c >= 'A' && c <= 'Z' {
		return letterValues[c-'A']
	}
	return int(c - '0')
}
