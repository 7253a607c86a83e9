package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"

	// Session/routing.
	ErrGameBusy     = "E_GAME_BUSY"
	ErrGameNotFound = "E_GAME_NOT_FOUND"
	ErrRoleDenied   = "E_ROLE_DENIED"

	// Turn/combat layer.
	ErrBadRequest     = "E_BAD_REQUEST"
	ErrTurnInProgress = "E_TURN_IN_PROGRESS"
	ErrNoCombat       = "E_NO_COMBAT"
	ErrStale          = "E_STALE"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrProtoVersion:    {},
	ErrGameBusy:        {},
	ErrGameNotFound:    {},
	ErrRoleDenied:      {},
	ErrBadRequest:      {},
	ErrTurnInProgress:  {},
	ErrNoCombat:        {},
	ErrStale:           {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
