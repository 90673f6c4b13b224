package lineup

import (
	"fmt"
	"strings"
)

// SlotsPerLineup is 4 forward lines of 3, 3 defense pairs of 2 and 2 goalies.
const SlotsPerLineup = ForwardLines*3 + DefensePairs*2 + 2

var allSlots = buildSlots()

// AllSlots returns every slot of a lineup in search order: forward lines
// 1-4 (lw, c, rw), defense pairs 1-3 (ld, rd), then starter and backup.
func AllSlots() []Slot {
	out := make([]Slot, len(allSlots))
	copy(out, allSlots)
	return out
}

func buildSlots() []Slot {
	out := make([]Slot, 0, SlotsPerLineup)
	for i := 0; i < ForwardLines; i++ {
		line := lineName("line", i)
		out = append(out,
			Slot{Section: SectionForwards, Line: line, Position: SlotLeftWing},
			Slot{Section: SectionForwards, Line: line, Position: SlotCenter},
			Slot{Section: SectionForwards, Line: line, Position: SlotRightWing},
		)
	}
	for i := 0; i < DefensePairs; i++ {
		pair := lineName("pair", i)
		out = append(out,
			Slot{Section: SectionDefense, Line: pair, Position: SlotLeftDefense},
			Slot{Section: SectionDefense, Line: pair, Position: SlotRightDefense},
		)
	}
	out = append(out,
		Slot{Section: SectionGoalies, Position: SlotStarter},
		Slot{Section: SectionGoalies, Position: SlotBackup},
	)
	return out
}

// ParseSlot normalizes a slot address and checks it belongs to the tree.
func ParseSlot(section, line, position string) (Slot, error) {
	slot := Slot{
		Section:  Section(strings.ToLower(strings.TrimSpace(section))),
		Line:     strings.ToLower(strings.TrimSpace(line)),
		Position: SlotPosition(strings.ToLower(strings.TrimSpace(position))),
	}

	var probe Lineup
	if _, err := probe.ref(slot); err != nil {
		return Slot{}, err
	}
	return slot, nil
}

// ParseSlotPosition validates a bare slot position such as "lw" or "starter".
func ParseSlotPosition(raw string) (SlotPosition, error) {
	pos := SlotPosition(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := pos.RequiredPosition(); !ok {
		return "", fmt.Errorf("%w: unknown slot position %q", ErrInvalidSlot, raw)
	}
	return pos, nil
}
