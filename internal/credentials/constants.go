package credentials

import "time"

const (
	// RedisKeyPrefix namespaces credential keys
	RedisKeyPrefix = "word-stone:credentials:"

	// DefaultTTL bounds how long stored credentials survive in redis
	DefaultTTL = 12 * time.Hour

	fileExt  = ".json"
	fileMode = 0o600
	dirMode  = 0o700
)

// Log messages
const (
	LogMsgStored        = "Stored credentials"
	LogMsgDeleted       = "Deleted credentials"
	LogMsgCorruptRecord = "Ignoring unreadable credentials record"
)
