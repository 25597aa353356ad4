package store

// Boost Campaign ENUMs
const (
	BoostStatusPendingPayment = "pending_payment"
	BoostStatusActive         = "active"
	BoostStatusCompleted      = "completed"
	BoostStatusCancelled      = "cancelled"
	BoostStatusPaused         = "paused"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Asset ENUMs
const (
	AssetTypeClip = "clip"
	AssetTypeMeme = "meme"
	AssetTypeGif  = "gif"
)

// Suggestion ENUMs
const (
	SuggestionStatusPending   = "pending"
	SuggestionStatusApproved  = "approved"
	SuggestionStatusDismissed = "dismissed"
)
