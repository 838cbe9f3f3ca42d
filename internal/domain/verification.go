package domain

// VerificationCode is a one-time 6-digit login code tied to a normalized
// admin email. PK: email. At most one live code exists per email; storing a
// new one replaces the old one. ExpiresAt is a Unix timestamp, also used as
// the DynamoDB TTL attribute when the durable backend is selected.
type VerificationCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
