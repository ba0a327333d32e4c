package models

// ConfigEntry is one persisted key/value of the device configuration.
type ConfigEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}
