package querybuilder

import "testing"

func TestSelect_WhereOrLimit(t *testing.T) {
	t.Parallel()

	query, args, err := Select("team", "team_id", "restricted").
		From("team_progress").
		Where(Or(Eq("team_id", "TR-123456"), Eq("team", "TR-123456"))).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT team, team_id, restricted FROM team_progress WHERE (team_id = $1 OR team = $2) LIMIT 1"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 2 || args[0] != "TR-123456" || args[1] != "TR-123456" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdate_ConditionalWrite(t *testing.T) {
	t.Parallel()

	query, args, err := Update("team_progress").
		Set("locked_device", "device-1").
		Set("locked_member", "Asha").
		Where(Eq("team", "Falcons"), IsNull("locked_device")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "UPDATE team_progress SET locked_device = $1, locked_member = $2 WHERE team = $3 AND locked_device IS NULL"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
}

func TestInsert_MultiRow(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("activity_log").
		Columns("team", "checkpoint", "scanned_at").
		Values("Falcons", "LIB", "10:04:31").
		Values("Otters", "GYM", "10:05:02").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO activity_log (team, checkpoint, scanned_at) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %v", args)
	}
}

func TestSelect_OrderByExprNumbering(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").
		From("team_progress").
		Where(Or(Eq("team_id", "TR-123456"), Eq("team", "TR-123456"))).
		OrderByExpr("(team_id = ?) DESC", "TR-123456").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT * FROM team_progress WHERE (team_id = $1 OR team = $2) ORDER BY (team_id = $3) DESC LIMIT 1"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 3 || args[2] != "TR-123456" {
		t.Fatalf("unexpected args: %v", args)
	}

	// The order-by placeholder must renumber itself when the WHERE clause
	// grows, not pin a fixed index.
	query, args, err = Select("*").
		From("team_progress").
		Where(
			Or(Eq("team_id", "TR-123456"), Eq("team", "TR-123456")),
			Eq("restricted", false),
		).
		OrderByExpr("(team_id = ?) DESC", "TR-123456").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want = "SELECT * FROM team_progress WHERE (team_id = $1 OR team = $2) AND restricted = $3 ORDER BY (team_id = $4) DESC"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
}

func TestSelect_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
