package draw

// DefaultBatchSize is the number of cards in one pack
const DefaultBatchSize = 5
