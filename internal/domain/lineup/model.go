package lineup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/gmmode/internal/domain/player"
)

var (
	ErrUnknownTeam = errors.New("unknown lineup")
	ErrInvalidSlot = errors.New("invalid lineup slot")
)

// Team identifies one of the two lineups of the franchise.
type Team string

const (
	TeamNHL Team = "nhl"
	TeamAHL Team = "ahl"
)

// Teams lists the lineups in search order.
var Teams = []Team{TeamNHL, TeamAHL}

func ParseTeam(raw string) (Team, error) {
	switch Team(strings.ToLower(strings.TrimSpace(raw))) {
	case TeamNHL:
		return TeamNHL, nil
	case TeamAHL:
		return TeamAHL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTeam, raw)
	}
}

// Status classifies a player by the lineup holding them.
type Status string

const (
	StatusPrimary    Status = "primary"
	StatusSecondary  Status = "secondary"
	StatusUnassigned Status = "unassigned"
)

func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "primary", "nhl":
		return StatusPrimary, true
	case "secondary", "ahl":
		return StatusSecondary, true
	case "unassigned", "none":
		return StatusUnassigned, true
	default:
		return "", false
	}
}

type Section string

const (
	SectionForwards Section = "forwards"
	SectionDefense  Section = "defense"
	SectionGoalies  Section = "goalies"
)

// SlotPosition names a slot inside a line, pair or the goalie tandem.
type SlotPosition string

const (
	SlotLeftWing     SlotPosition = "lw"
	SlotCenter       SlotPosition = "c"
	SlotRightWing    SlotPosition = "rw"
	SlotLeftDefense  SlotPosition = "ld"
	SlotRightDefense SlotPosition = "rd"
	SlotStarter      SlotPosition = "starter"
	SlotBackup       SlotPosition = "backup"
)

// RequiredPosition is the roster position a slot accepts.
func (p SlotPosition) RequiredPosition() (player.Position, bool) {
	switch p {
	case SlotLeftWing:
		return player.PositionLeftWing, true
	case SlotCenter:
		return player.PositionCenter, true
	case SlotRightWing:
		return player.PositionRightWing, true
	case SlotLeftDefense:
		return player.PositionLeftDefense, true
	case SlotRightDefense:
		return player.PositionRightDefense, true
	case SlotStarter, SlotBackup:
		return player.PositionGoalie, true
	default:
		return "", false
	}
}

const (
	ForwardLines = 4
	DefensePairs = 3
)

// Slot addresses one position of the lineup tree. Line is "line1".."line4"
// for forwards, "pair1".."pair3" for defense and empty for goalies.
type Slot struct {
	Section  Section
	Line     string
	Position SlotPosition
}

func (s Slot) String() string {
	if s.Line == "" {
		return string(s.Section) + "/" + string(s.Position)
	}
	return string(s.Section) + "/" + s.Line + "/" + string(s.Position)
}

// Lineup is the fixed slot tree of one team. Slots hold player ids; the
// empty string is an empty slot.
type Lineup struct {
	Forwards [ForwardLines]ForwardLine
	Defense  [DefensePairs]DefensePair
	Goalies  GoalieTandem
}

type ForwardLine struct {
	LW string
	C  string
	RW string
}

type DefensePair struct {
	LD string
	RD string
}

type GoalieTandem struct {
	Starter string
	Backup  string
}

// Get returns the occupant of slot.
func (l *Lineup) Get(slot Slot) (string, error) {
	ref, err := l.ref(slot)
	if err != nil {
		return "", err
	}
	return *ref, nil
}

// Set writes playerID into slot; an empty id clears it.
func (l *Lineup) Set(slot Slot, playerID string) error {
	ref, err := l.ref(slot)
	if err != nil {
		return err
	}
	*ref = playerID
	return nil
}

// ClearPlayer empties every slot holding playerID and reports how many were
// cleared.
func (l *Lineup) ClearPlayer(playerID string) int {
	if playerID == "" {
		return 0
	}

	cleared := 0
	for _, slot := range AllSlots() {
		ref, _ := l.ref(slot)
		if *ref == playerID {
			*ref = ""
			cleared++
		}
	}
	return cleared
}

// Find returns the first slot holding playerID in search order.
func (l *Lineup) Find(playerID string) (Slot, bool) {
	if playerID == "" {
		return Slot{}, false
	}
	for _, slot := range AllSlots() {
		ref, _ := l.ref(slot)
		if *ref == playerID {
			return slot, true
		}
	}
	return Slot{}, false
}

// Occupants lists occupied slots in search order.
func (l *Lineup) Occupants() []Occupant {
	out := make([]Occupant, 0, SlotsPerLineup)
	for _, slot := range AllSlots() {
		ref, _ := l.ref(slot)
		if *ref != "" {
			out = append(out, Occupant{Slot: slot, PlayerID: *ref})
		}
	}
	return out
}

type Occupant struct {
	Slot     Slot
	PlayerID string
}

func (l *Lineup) ref(slot Slot) (*string, error) {
	switch slot.Section {
	case SectionForwards:
		idx, err := lineIndex(slot.Line, "line", ForwardLines)
		if err != nil {
			return nil, err
		}
		line := &l.Forwards[idx]
		switch slot.Position {
		case SlotLeftWing:
			return &line.LW, nil
		case SlotCenter:
			return &line.C, nil
		case SlotRightWing:
			return &line.RW, nil
		}
	case SectionDefense:
		idx, err := lineIndex(slot.Line, "pair", DefensePairs)
		if err != nil {
			return nil, err
		}
		pair := &l.Defense[idx]
		switch slot.Position {
		case SlotLeftDefense:
			return &pair.LD, nil
		case SlotRightDefense:
			return &pair.RD, nil
		}
	case SectionGoalies:
		if slot.Line != "" {
			return nil, fmt.Errorf("%w: goalies have no line, got %q", ErrInvalidSlot, slot.Line)
		}
		switch slot.Position {
		case SlotStarter:
			return &l.Goalies.Starter, nil
		case SlotBackup:
			return &l.Goalies.Backup, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown section %q", ErrInvalidSlot, slot.Section)
	}

	return nil, fmt.Errorf("%w: position %q is not part of %s", ErrInvalidSlot, slot.Position, slot.Section)
}

func lineIndex(line, prefix string, count int) (int, error) {
	for i := 0; i < count; i++ {
		if line == lineName(prefix, i) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown line %q", ErrInvalidSlot, line)
}

func lineName(prefix string, idx int) string {
	return fmt.Sprintf("%s%d", prefix, idx+1)
}
