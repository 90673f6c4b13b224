package postgres

import "time"

const kvBlobsTable = "kv_blobs"

type kvBlobTableModel struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
