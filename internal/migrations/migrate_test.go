package migrations

import (
	"testing"

	"github.com/Simplici0/agrokalk/internal/db"
)

func TestUpCreatesTablesAndIsRepeatable(t *testing.T) {
	database, err := db.Open(db.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := Up(database); err != nil {
			t.Fatalf("Up run %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"users", "kv_blobs"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}
