package runner

// ConfigurationError is returned when a scan request is rejected before any probe is sent
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "invalid scan request: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CapabilityError is returned when the selected protocol needs privileges the process lacks
type CapabilityError struct {
	Err error
}

func (e *CapabilityError) Error() string {
	return "missing capability: " + e.Err.Error()
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}
