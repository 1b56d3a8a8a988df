package catalog

// ============================================================================
// Source Formats
// ============================================================================

// Supported vocabulary file extensions
const (
	ExtJSON = ".json"
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// Column headers recognised in tabular sources
const (
	ColumnWord       = "word"
	ColumnDefinition = "definition"
	ColumnRarity     = "rarity"
)

// ============================================================================
// Chat Notices
// ============================================================================

const (
	NoticeLoaded     = "> Vocabulary mounted. Loaded %d entries."
	NoticeDuplicates = "> Detected %d duplicate words (removed)."
	NoticeUnique     = "> Available: %d unique words."
	NoticeFallback   = "> [WARNING] Could not read the vocabulary source.<br>> Fallback seed vocabulary enabled."
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCatalogLoaded   = "Vocabulary catalog loaded"
	LogMsgCatalogFallback = "Vocabulary catalog load failed, using seed catalog"
	LogMsgUnknownRarity   = "Unknown rarity in vocabulary source, defaulting to common"
)
