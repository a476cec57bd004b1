package problemgen

// Config controls repeat avoidance in the Generator.
type Config struct {
	// MaxAttempts is the number of samples drawn while looking for an
	// unused pair. The last sample is accepted even if it is a repeat.
	MaxAttempts int

	// MaxUsed caps the used-pair memory. Once it holds more than MaxUsed
	// keys it is cleared entirely.
	MaxUsed int
}

// DefaultConfig returns the standard repeat-avoidance settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 50,
		MaxUsed:     200,
	}
}
