package mines

import "errors"

var ErrInvalidConfiguration = errors.New("invalid configuration")

type ConfigError struct {
	message string
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	return "invalid configuration: " + e.message
}

func (e ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
