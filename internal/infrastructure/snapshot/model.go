package snapshot

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Wire layout of the persisted blobs. Field names follow the camelCase keys
// of the browser build of the app.

type playerRecord struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Number       int     `json:"number"`
	Position     string  `json:"position"`
	Overall      int     `json:"overall"`
	ContractTerm int     `json:"contractTerm"`
	Salary       float64 `json:"salary"`
}

// storedPlayerRecord is the decode side of playerRecord. Blobs written by the
// browser build carry numeric ids and form fields saved as strings.
type storedPlayerRecord struct {
	ID           looseText `json:"id"`
	FirstName    looseText `json:"firstName"`
	LastName     looseText `json:"lastName"`
	Number       looseText `json:"number"`
	Position     looseText `json:"position"`
	Overall      looseText `json:"overall"`
	ContractTerm looseText `json:"contractTerm"`
	Salary       looseText `json:"salary"`
}

// slotRecord is a weak reference to a roster player. Older blobs embedded
// the whole player here, with a numeric id; only the id is read back.
type slotRecord struct {
	ID looseText `json:"id"`
}

// looseText decodes a JSON string, number or bool as its text. Null and
// nested values decode to empty.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null", strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		*t = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = looseText(s)
	default:
		*t = looseText(raw)
	}
	return nil
}

type forwardLineRecord struct {
	LW *slotRecord `json:"lw"`
	C  *slotRecord `json:"c"`
	RW *slotRecord `json:"rw"`
}

type defensePairRecord struct {
	LD *slotRecord `json:"ld"`
	RD *slotRecord `json:"rd"`
}

type goaliesRecord struct {
	Starter *slotRecord `json:"starter"`
	Backup  *slotRecord `json:"backup"`
}

type lineupRecord struct {
	Forwards map[string]forwardLineRecord `json:"forwards"`
	Defense  map[string]defensePairRecord `json:"defense"`
	Goalies  goaliesRecord                `json:"goalies"`
}
