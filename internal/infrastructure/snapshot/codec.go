package snapshot

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
)

func EncodePlayers(players []player.Player) ([]byte, error) {
	records := make([]playerRecord, 0, len(players))
	for _, p := range players {
		records = append(records, playerRecord{
			ID:           p.ID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Number:       p.Number,
			Position:     string(p.Position),
			Overall:      p.Overall,
			ContractTerm: p.ContractTerm,
			Salary:       p.Salary,
		})
	}

	out, err := encode(records)
	if err != nil {
		return nil, crerr.Wrap(err, "encode players")
	}
	return out, nil
}

// DecodePlayers reads a players blob. Records are re-clamped on the way in so
// a hand-edited blob cannot break the range invariants; records without an id
// or a name are dropped.
func DecodePlayers(raw []byte) ([]player.Player, error) {
	var records []storedPlayerRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Wrap(err, "decode players")
	}

	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		id := strings.TrimSpace(string(rec.ID))
		if id == "" {
			continue
		}
		p, err := player.Normalize(id, player.Input{
			FirstName:    string(rec.FirstName),
			LastName:     string(rec.LastName),
			Number:       string(rec.Number),
			Position:     string(rec.Position),
			Overall:      string(rec.Overall),
			ContractTerm: string(rec.ContractTerm),
			Salary:       string(rec.Salary),
		}, player.ModeUpdate)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func EncodeLineup(item lineup.Lineup) ([]byte, error) {
	rec := lineupRecord{
		Forwards: make(map[string]forwardLineRecord, lineup.ForwardLines),
		Defense:  make(map[string]defensePairRecord, lineup.DefensePairs),
	}
	for i, line := range item.Forwards {
		rec.Forwards[fmt.Sprintf("line%d", i+1)] = forwardLineRecord{
			LW: toSlotRecord(line.LW),
			C:  toSlotRecord(line.C),
			RW: toSlotRecord(line.RW),
		}
	}
	for i, pair := range item.Defense {
		rec.Defense[fmt.Sprintf("pair%d", i+1)] = defensePairRecord{
			LD: toSlotRecord(pair.LD),
			RD: toSlotRecord(pair.RD),
		}
	}
	rec.Goalies = goaliesRecord{
		Starter: toSlotRecord(item.Goalies.Starter),
		Backup:  toSlotRecord(item.Goalies.Backup),
	}

	out, err := encode(rec)
	if err != nil {
		return nil, crerr.Wrap(err, "encode lineup")
	}
	return out, nil
}

// DecodeLineup reads a lineup blob. Unknown lines are ignored and missing
// ones stay empty.
func DecodeLineup(raw []byte) (lineup.Lineup, error) {
	var rec lineupRecord
	if err := sonic.Unmarshal(raw, &rec); err != nil {
		return lineup.Lineup{}, crerr.Wrap(err, "decode lineup")
	}

	var out lineup.Lineup
	for i := range out.Forwards {
		line := rec.Forwards[fmt.Sprintf("line%d", i+1)]
		out.Forwards[i] = lineup.ForwardLine{
			LW: fromSlotRecord(line.LW),
			C:  fromSlotRecord(line.C),
			RW: fromSlotRecord(line.RW),
		}
	}
	for i := range out.Defense {
		pair := rec.Defense[fmt.Sprintf("pair%d", i+1)]
		out.Defense[i] = lineup.DefensePair{
			LD: fromSlotRecord(pair.LD),
			RD: fromSlotRecord(pair.RD),
		}
	}
	out.Goalies = lineup.GoalieTandem{
		Starter: fromSlotRecord(rec.Goalies.Starter),
		Backup:  fromSlotRecord(rec.Goalies.Backup),
	}
	return out, nil
}

func toSlotRecord(playerID string) *slotRecord {
	if playerID == "" {
		return nil
	}
	return &slotRecord{ID: looseText(playerID)}
}

func fromSlotRecord(rec *slotRecord) string {
	if rec == nil {
		return ""
	}
	return strings.TrimSpace(string(rec.ID))
}

func encode(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	// the encoder terminates with a newline; the buffer goes back to the pool
	raw := buf.B
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
	}
	return append([]byte(nil), raw...), nil
}
