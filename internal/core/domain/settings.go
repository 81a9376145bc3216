package domain

import "time"

// Settings holds the display configuration served to clients. A missing
// document is replaced by DefaultSettings, never treated as an error.
type Settings struct {
	SystemName string    `json:"systemName" bson:"system_name"`
	Timezone   string    `json:"timezone" bson:"timezone"`
	DateFormat string    `json:"dateFormat" bson:"date_format"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// DefaultSettings returns the configuration used before an admin has saved one.
func DefaultSettings() Settings {
	return Settings{
		SystemName: "Performance Hub",
		Timezone:   "UTC",
		DateFormat: "2006-01-02",
	}
}
