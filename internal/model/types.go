package model

// DisplayState is the status of a DataView. Implemented by Loading, Loaded
// and Failed only.
type DisplayState interface {
	displayState()
	// Resolved reports whether the fetch has settled.
	Resolved() bool
}

// Loading is the initial state, active until the fetch settles.
type Loading struct{}

// Loaded holds the message returned by the backend.
type Loaded struct {
	Message string
}

// Failed holds the placeholder shown in place of the message.
type Failed struct {
	Placeholder string
}

func (Loading) displayState() {}
func (Loaded) displayState()  {}
func (Failed) displayState()  {}

func (Loading) Resolved() bool { return false }
func (Loaded) Resolved() bool  { return true }
func (Failed) Resolved() bool  { return true }

// ConfigValue is the configuration string shown by the view.
type ConfigValue string

// ResolveConfigValue returns raw, or ArgVarFallback when raw is empty.
func ResolveConfigValue(raw string) ConfigValue {
	if raw == "" {
		return ArgVarFallback
	}
	return ConfigValue(raw)
}
