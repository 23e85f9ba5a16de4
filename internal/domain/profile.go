package domain

import "time"

// Profile holds the single owner's display preferences. Locale and currency
// feed the slot formatter defaults.
type Profile struct {
	OwnerID     string
	DisplayName string
	Locale      string // BCP 47 tag, e.g. "en-US"
	Currency    string // ISO 4217 code, e.g. "USD"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
