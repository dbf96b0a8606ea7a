package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/Aayush4518/WhisperBox-SQL/config"
)

func TestOpenEnforcesForeignKeysOnEveryConnection(t *testing.T) {
	cfg := config.Config{
		DBUrl: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// hold several pooled connections simultaneously so each one is a
	// distinct SQLite connection
	ctx := context.Background()
	conns := make([]*sql.Conn, 3)
	for i := range conns {
		conn, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("acquire connection %d: %v", i, err)
		}
		t.Cleanup(func() { conn.Close() })
		conns[i] = conn
	}

	for i, conn := range conns {
		var enabled int
		err = conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled)
		if err != nil {
			t.Fatalf("connection %d: read pragma: %v", i, err)
		}
		if enabled != 1 {
			t.Errorf("connection %d: foreign keys not enforced", i)
		}

		_, err = conn.ExecContext(ctx, `
			INSERT INTO responses (form_id, response_set_id, question_id, answer)
			VALUES ('GHOST1', 'orphan_set', 1, 'x')`)
		if err == nil {
			t.Errorf("connection %d: orphan insert for a nonexistent form succeeded", i)
		}
	}
}
