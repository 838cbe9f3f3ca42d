package domain

// StoreSettings is the single storefront configuration record served through
// the read cache. PK: settings_id (always "store").
type StoreSettings struct {
	SettingsID      string `json:"-" dynamodbav:"settings_id"`
	StoreName       string `json:"store_name" dynamodbav:"store_name"`
	SupportEmail    string `json:"support_email" dynamodbav:"support_email"`
	Currency        string `json:"currency" dynamodbav:"currency"`
	MaintenanceMode bool   `json:"maintenance_mode" dynamodbav:"maintenance_mode"`
	UpdatedAt       int64  `json:"updated_at" dynamodbav:"updated_at"`
}

// SettingsInput is the admin-facing update payload.
type SettingsInput struct {
	StoreName       string `json:"store_name" validate:"required"`
	SupportEmail    string `json:"support_email" validate:"required,email"`
	Currency        string `json:"currency" validate:"required,len=3"`
	MaintenanceMode bool   `json:"maintenance_mode"`
}
