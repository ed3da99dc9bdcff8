package github

import (
	"encoding/hex"
	"fmt"
)

// Color is an RGB label color. Its text form is six lowercase hex digits
// without a leading '#', which is what the GitHub labels API expects.
type Color struct {
	R, G, B uint8
}

// ColorFormatError reports a color string that is not six hex digits
type ColorFormatError struct {
	Value string
}

// Error implements the error interface
func (e *ColorFormatError) Error() string {
	return fmt.Sprintf("invalid color format %q: expected 6 hex digits such as ff0000", e.Value)
}

// Is reports ErrInvalidColorFormat as a match so callers can use errors.Is
func (e *ColorFormatError) Is(target error) bool {
	return target == ErrInvalidColorFormat
}

// ParseColor decodes a six digit hex color such as "d73a4a"
func ParseColor(s string) (Color, error) {
	if len(s) != 6 {
		return Color{}, &ColorFormatError{Value: s}
	}

	var buf [3]byte
	if _, err := hex.Decode(buf[:], []byte(s)); err != nil {
		return Color{}, &ColorFormatError{Value: s}
	}

	return Color{R: buf[0], G: buf[1], B: buf[2]}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// It is intended for literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the lowercase hex form of the color
func (c Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
