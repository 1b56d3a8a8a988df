package ledger

import "time"

// Default client configuration
const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryDelay = 500 * time.Millisecond
	maxJitter         = 100 * time.Millisecond
)

// Remote ledger endpoints
const (
	PathVerify      = "/auth/verify"
	PathCurrentUser = "/users/me"
	PathPacks       = "/packs/me"
	PathAddPacks    = "/packs/me/add"
	PathUsePack     = "/packs/me/%s/use"
	PathWords       = "/words/me"
	PathFavorite    = "/words/me/%s/favorite"
)

// Operation names used in errors, logs and metrics
const (
	OpVerify      = "verify"
	OpCurrentUser = "current_user"
	OpUpdateUser  = "update_current_user"
	OpGetPacks    = "get_packs"
	OpAddPacks    = "add_packs"
	OpUsePack     = "use_pack"
	OpGetWords    = "get_words"
	OpSaveWords   = "save_words"
	OpSetFavorite = "set_favorite"
)

// Log messages
const (
	LogMsgRetrying       = "Retrying ledger request"
	LogMsgRequestFailed  = "Ledger request failed"
	LogMsgServerError    = "Ledger server error, will retry"
	LogMsgCallSucceeded  = "Ledger call succeeded"
	LogMsgRejectedByPeer = "Ledger rejected request"
)
