package player

import (
	"fmt"
	"strings"
)

// Position is the hockey position a player is registered at.
type Position string

const (
	PositionCenter       Position = "C"
	PositionLeftWing     Position = "LW"
	PositionRightWing    Position = "RW"
	PositionLeftDefense  Position = "LD"
	PositionRightDefense Position = "RD"
	PositionGoalie       Position = "G"
)

var AllPositions = map[Position]struct{}{
	PositionCenter:       {},
	PositionLeftWing:     {},
	PositionRightWing:    {},
	PositionLeftDefense:  {},
	PositionRightDefense: {},
	PositionGoalie:       {},
}

var positionAliases = map[string]Position{
	"c":             PositionCenter,
	"center":        PositionCenter,
	"centre":        PositionCenter,
	"lw":            PositionLeftWing,
	"left wing":     PositionLeftWing,
	"rw":            PositionRightWing,
	"right wing":    PositionRightWing,
	"ld":            PositionLeftDefense,
	"left defense":  PositionLeftDefense,
	"left defence":  PositionLeftDefense,
	"rd":            PositionRightDefense,
	"right defense": PositionRightDefense,
	"right defence": PositionRightDefense,
	"g":             PositionGoalie,
	"goalie":        PositionGoalie,
}

// ParsePosition resolves a position code or long name. The second return
// value is false when the input is not a known position.
func ParsePosition(raw string) (Position, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	key = strings.ReplaceAll(key, "-", " ")
	pos, ok := positionAliases[key]
	return pos, ok
}

// Player is one record of the franchise roster.
type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Number       int
	Position     Position
	Overall      int
	ContractTerm int
	Salary       float64
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks the ranges a stored record must satisfy. Records built by
// Normalize always pass.
func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return ErrNameRequired
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Number < NumberMin || p.Number > NumberMax {
		return fmt.Errorf("player number out of range: %d", p.Number)
	}
	if p.Overall < OverallMin || p.Overall > OverallMax {
		return fmt.Errorf("player overall out of range: %d", p.Overall)
	}
	if p.ContractTerm < ContractTermMin || p.ContractTerm > ContractTermMax {
		return fmt.Errorf("player contract term out of range: %d", p.ContractTerm)
	}
	if p.Salary < SalaryMin || p.Salary > SalaryMax {
		return fmt.Errorf("player salary out of range: %.3f", p.Salary)
	}

	return nil
}

// Input is the raw, unvalidated form of a player as typed by a user.
type Input struct {
	FirstName    string
	LastName     string
	Number       string
	Position     string
	Overall      string
	ContractTerm string
	Salary       string
}
