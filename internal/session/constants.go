package session

import "time"

// Chat modes
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// Confirm-phase operation names, used in logs and failure notices
const (
	OpOpenPack  = "open pack"
	OpClaim     = "claim packs"
	OpFavorite  = "favorite"
	OpUnlockAll = "unlock all"
	OpResync    = "resync"

	// OpUpdateProfile is confirmed before it is applied, so it never uses the confirm phase
	OpUpdateProfile = "update profile"
)

const (
	// enqueueTimeout bounds how long an operation waits for room in the worker queue
	enqueueTimeout = 5 * time.Second

	// relaySendTimeout bounds a debounced inventory push
	relaySendTimeout = 5 * time.Second
)

// Chat notices
const (
	NoticeClaimed        = "Claimed %d packs."
	NoticeUnlockAll      = "[TEST MODE] Injection complete. Added %d words."
	NoticeSyncFailed     = "[SYNC ERROR] %s could not be confirmed with the server; your local state was kept."
	NoticeInitFailed     = "[SYNC ERROR] Could not load your saved words and packs."
	NoticeNotPersisted   = "\"%s\" is still syncing and cannot be starred yet."
	NoticeRoseReceived   = "🌹 %s sent a rose for your message"
	NoticeRoseAnonSender = "someone"
	NoticeRelayFailed    = "[RELAY ERROR] Message could not be delivered."
)

// Log messages
const (
	LogMsgSessionStarted    = "Session started"
	LogMsgSessionClosed     = "Session closed"
	LogMsgSessionRestored   = "Session restored from stored credentials"
	LogMsgInitSyncFailed    = "Initial ledger sync failed"
	LogMsgConfirmFailed     = "Confirm phase failed, keeping optimistic state"
	LogMsgConfirmSkipped    = "Confirm phase skipped for closed session"
	LogMsgEnqueueFailed     = "Failed to enqueue confirm job"
	LogMsgPublishFailed     = "Failed to publish session event"
	LogMsgInventoryPush     = "Pushing inventory to relay"
	LogMsgInventoryPushFail = "Inventory push to relay failed"
	LogMsgRelayState        = "Relay connection state changed"
	LogMsgRelaySendFailed   = "Failed to send chat line to relay"
	LogMsgResyncFailed      = "Session resync failed"
	LogMsgResyncAll         = "Resynced live sessions"
	LogMsgCredentialsFailed = "Credential store operation failed"
	LogMsgSessionEvicted    = "Session evicted"
	LogMsgProfileUpdated    = "Profile updated"
)
