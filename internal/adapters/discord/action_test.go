package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		customID string
		want     action
		ok       bool
	}{
		{"menu", action{kind: actionMenu}, true},
		{"upcoming", action{kind: actionUpcoming}, true},
		{"mine", action{kind: actionMine}, true},
		{"create", action{kind: actionCreate}, true},
		{"event:7", action{kind: actionDetails, eventID: 7}, true},
		{"join:42", action{kind: actionJoin, eventID: 42}, true},
		{"cancel:42", action{kind: actionCancel, eventID: 42}, true},
		{"delete:42", action{kind: actionDelete, eventID: 42}, true},

		{"", action{}, false},
		{"teleport", action{}, false},
		{"join", action{}, false},          // id-carrying verb without an id
		{"join:", action{}, false},         // empty id
		{"join:abc", action{}, false},      // non-numeric id
		{"join:0", action{}, false},        // ids start at 1
		{"join:-3", action{}, false},
		{"menu:1", action{}, false},        // bare verb with a stray arg
		{"joinextra:42", action{}, false},  // no prefix matching
		{"join:42:junk", action{}, false},  // trailing segment
	}
	for _, tt := range tests {
		got, ok := parseAction(tt.customID)
		assert.Equal(t, tt.ok, ok, "customID %q", tt.customID)
		assert.Equal(t, tt.want, got, "customID %q", tt.customID)
	}
}

func TestActionCustomIDRoundTrip(t *testing.T) {
	for _, a := range []action{
		{kind: actionMenu},
		{kind: actionUpcoming},
		{kind: actionMine},
		{kind: actionCreate},
		{kind: actionDetails, eventID: 7},
		{kind: actionJoin, eventID: 42},
		{kind: actionCancel, eventID: 42},
		{kind: actionDelete, eventID: 42},
	} {
		got, ok := parseAction(a.customID())
		assert.True(t, ok, "kind %d", a.kind)
		assert.Equal(t, a, got)
	}
}
