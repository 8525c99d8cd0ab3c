package backdrop

import "fmt"

// ConfigurationError reports an animated backdrop that cannot be built from
// its textures and metadata. It is local to one layer.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backdrop %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("backdrop %s: %s", e.Path, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErrorf(path string, err error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: fmt.Sprintf(format, args...), Err: err}
}
