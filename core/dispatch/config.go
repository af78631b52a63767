package dispatch

// Config defines dispatch-related settings.
type Config struct {
	// PublishEvents enables lifecycle events on the service event bus.
	PublishEvents bool `json:"publish_events"`
	// EventBuffer is the per-subscriber channel capacity of the bus.
	EventBuffer int `json:"event_buffer"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.EventBuffer <= 0 {
		c.EventBuffer = 64
	}
}
