package dataset

import (
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "schema", err: newSchemaError("events", []string{"TYPE"}, []string{"TEAM_ID"}), want: KindSchema},
		{name: "duplicate", err: newDuplicateColumnError("events", "TEAM_ID", []string{"team_id", "TEAM_ID"}), want: KindDuplicateColumn},
		{name: "wrapped config", err: fmt.Errorf("aggregate: %w", NewConfigError("metric", "unknown %q", "tackles")), want: KindConfig},
		{name: "precondition", err: NewPreconditionError("x=%g outside pitch", 120.0), want: KindPrecondition},
		{name: "unrelated", err: fmt.Errorf("boom"), want: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf(%v)=%q want=%q", tt.err, got, tt.want)
			}
		})
	}
}

func TestSchemaError_MessageListsMissingAndFound(t *testing.T) {
	err := newSchemaError("players", []string{"NAME", "PLAYER_ID"}, []string{"MINUTES"})
	want := `schema error: dataset "players" missing required column(s) [NAME, PLAYER_ID]; found [MINUTES]`
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got=%s\nwant=%s", err.Error(), want)
	}
}
