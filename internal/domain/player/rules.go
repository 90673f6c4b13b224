package player

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	NumberMin       = 1
	NumberMax       = 99
	OverallMin      = 50
	OverallMax      = 99
	ContractTermMin = 1
	ContractTermMax = 8
	SalaryMin       = 0.825
	SalaryMax       = 15.0

	NumberDefault          = 1
	OverallDefaultOnCreate = 75
	OverallDefaultOnUpdate = 50
	ContractTermDefault    = 1
	SalaryDefault          = 0.825
	PositionDefault        = PositionCenter

	salaryScale = 1000
)

var ErrNameRequired = errors.New("first and last name are required")

// ValidationError reports the field that made an input unusable.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Mode selects the defaults applied to empty or unparseable fields.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// IntField describes the bounds and fallback of one integer attribute.
type IntField struct {
	Min, Max, Default int
}

var (
	NumberField       = IntField{Min: NumberMin, Max: NumberMax, Default: NumberDefault}
	ContractTermField = IntField{Min: ContractTermMin, Max: ContractTermMax, Default: ContractTermDefault}
)

func OverallField(mode Mode) IntField {
	if mode == ModeUpdate {
		return IntField{Min: OverallMin, Max: OverallMax, Default: OverallDefaultOnUpdate}
	}
	return IntField{Min: OverallMin, Max: OverallMax, Default: OverallDefaultOnCreate}
}

// Clamp parses raw the way a numeric form field is read and forces the result
// into [Min, Max]. Unparseable input yields Default.
func (f IntField) Clamp(raw string) int {
	v, ok := parseLeadingInt(raw)
	if !ok {
		return f.Default
	}
	return clampInt(v, f.Min, f.Max)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSalary reads a salary in millions. Everything except digits and dots
// is discarded before parsing, so "$5.5M" reads as 5.5.
func ClampSalary(raw string) float64 {
	v, ok := parseLeadingDecimal(stripNonDecimal(raw))
	if !ok {
		return SalaryDefault
	}
	if v < SalaryMin {
		return SalaryMin
	}
	if v > SalaryMax {
		return SalaryMax
	}
	return RoundSalary(v)
}

func RoundSalary(v float64) float64 {
	return math.Round(v*salaryScale) / salaryScale
}

func ClampPosition(raw string) Position {
	if pos, ok := ParsePosition(raw); ok {
		return pos
	}
	return PositionDefault
}

// RequireName returns the trimmed name or a ValidationError for field.
func RequireName(field, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &ValidationError{Field: field, Err: ErrNameRequired}
	}
	return name, nil
}

// Normalize turns raw input into a valid player with the given id. Only the
// name fields can fail; every other field is clamped.
func Normalize(id string, in Input, mode Mode) (Player, error) {
	firstName, err := RequireName("firstName", in.FirstName)
	if err != nil {
		return Player{}, err
	}
	lastName, err := RequireName("lastName", in.LastName)
	if err != nil {
		return Player{}, err
	}

	return Player{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Number:       NumberField.Clamp(in.Number),
		Position:     ClampPosition(in.Position),
		Overall:      OverallField(mode).Clamp(in.Overall),
		ContractTerm: ContractTermField.Clamp(in.ContractTerm),
		Salary:       ClampSalary(in.Salary),
	}, nil
}

// ToInput renders a stored player back into its form representation.
func ToInput(p Player) Input {
	return Input{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Number:       strconv.Itoa(p.Number),
		Position:     string(p.Position),
		Overall:      strconv.Itoa(p.Overall),
		ContractTerm: strconv.Itoa(p.ContractTerm),
		Salary:       strconv.FormatFloat(p.Salary, 'f', 3, 64),
	}
}

// parseLeadingInt reads an optional sign followed by digits and ignores the
// rest of the string. "12abc" and "12.7" both read as 12.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow: saturate in the direction of the sign
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return v, true
}

func parseLeadingDecimal(s string) (float64, bool) {
	end := 0
	seenDot := false
	seenDigit := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			seenDigit = true
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		end++
	}
	if !seenDigit {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func stripNonDecimal(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
