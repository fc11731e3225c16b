// Package plugin provides the registry of build extensions. Extensions are
// selected by name from the project configuration and instantiated through
// factories, so every build gets fresh extension state.
package plugin

import "fmt"

// Plugin is implemented by every extension.
type Plugin interface {
	// Metadata returns the plugin's identity and concurrency declaration.
	Metadata() PluginMetadata
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier used in the configuration's
	// extensions list (e.g., "gitstamp").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// ParallelSafe reports whether the plugin's hooks may run concurrently
	// for different pages. Hosts render on a single worker when any loaded
	// plugin is not parallel safe.
	ParallelSafe bool
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	return nil
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
