package contribution

import (
	"time"
)

// Record is a voice-submitted phrase after enrichment. Records are immutable
// once appended to the contribution log.
type Record struct {
	ID          int       `yaml:"id"`
	Text        string    `yaml:"text"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Latitude    *float64  `yaml:"latitude,omitempty"`
	Longitude   *float64  `yaml:"longitude,omitempty"`
	AudioPath   string    `yaml:"audio_path"`
	CreatedAt   time.Time `yaml:"created_at"`
}
