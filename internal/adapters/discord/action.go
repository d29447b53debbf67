package discord

import (
	"fmt"
	"strconv"
	"strings"
)

// actionKind enumerates everything a component interaction can ask for.
// Custom IDs are "verb" or "verb:eventID", decoded once here and matched
// exhaustively by the handler; no prefix matching.
type actionKind int

const (
	actionUnknown actionKind = iota
	actionMenu
	actionUpcoming
	actionMine
	actionCreate
	actionDetails
	actionJoin
	actionCancel
	actionDelete
)

type action struct {
	kind    actionKind
	eventID int64
}

var actionVerbs = map[string]actionKind{
	"menu":     actionMenu,
	"upcoming": actionUpcoming,
	"mine":     actionMine,
	"create":   actionCreate,
	"event":    actionDetails,
	"join":     actionJoin,
	"cancel":   actionCancel,
	"delete":   actionDelete,
}

func parseAction(customID string) (action, bool) {
	verb, arg, hasArg := strings.Cut(customID, ":")
	kind, ok := actionVerbs[verb]
	if !ok {
		return action{}, false
	}
	switch kind {
	case actionDetails, actionJoin, actionCancel, actionDelete:
		if !hasArg {
			return action{}, false
		}
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return action{}, false
		}
		return action{kind: kind, eventID: id}, true
	default:
		if hasArg {
			return action{}, false
		}
		return action{kind: kind}, true
	}
}

func (a action) customID() string {
	for verb, kind := range actionVerbs {
		if kind != a.kind {
			continue
		}
		switch a.kind {
		case actionDetails, actionJoin, actionCancel, actionDelete:
			return fmt.Sprintf("%s:%d", verb, a.eventID)
		default:
			return verb
		}
	}
	return ""
}
