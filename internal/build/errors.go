package build

import "errors"

// Sentinel errors used to classify build failures. They are wrapped with
// context at the call site.
var (
	ErrUnknownBuilder   = errors.New("unknown builder")
	ErrValueNotDeclared = errors.New("configuration value not declared")
	ErrValueDeclared    = errors.New("configuration value already declared")
	ErrNotAnExtension   = errors.New("plugin is not a build extension")
	ErrPageRender       = errors.New("page render failed")
)
