package message

// Markup templates for classified tokens
const (
	markupKnown    = `<span class="token c-%s" data-t="%s">%s</span>`
	markupRejected = `<span class="token rejected">%s</span>`
	markupSuggest  = `"%s" &rarr; <span class="c-%s">%s</span>`
)

// Offline denial notice parts
const (
	NoticeDenied     = "ACCESS DENIED: unrecognized data blocks [%s]"
	NoticeSuggestion = "[SYSTEM SUGGESTION]:"
	NoticeOpenPacks  = "[SYSTEM HINT]: you do not own these words yet. Open some packs!"
	noticeBreak      = "<br>"
)

// DefaultAutocompleteLimit caps autocomplete candidates
const DefaultAutocompleteLimit = 10

// Suggestion thresholds by unknown token length
const (
	shortTokenLen  = 4
	mediumTokenLen = 7

	shortThreshold  = 1
	mediumThreshold = 2
	longThreshold   = 3
)
