package dynamo

// DynamoDB attribute names used in key, condition and update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldAccountID    = "account_id"
	fieldEmail        = "email"
	fieldPasswordHash = "password_hash"
	fieldIsVerified   = "is_verified"
	fieldUpdatedAt    = "updated_at"
	fieldPurpose      = "purpose"
	fieldTokenHash    = "token_hash"
	fieldAttempts     = "attempts"
	fieldExpiresAt    = "expires_at"
	fieldPostID       = "post_id"
	fieldAuthorID     = "author_id"
)

// Index names.
const (
	indexTokenHash = "token_hash-index"
	indexAuthorID  = "author_id-index"
)
