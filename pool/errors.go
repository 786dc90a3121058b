package pool

import "github.com/olekukonko/errors"

// Error taxonomy; match with errors.Is
var (
	// ErrInvalidTemplate marks a category never configured or whose template cannot be instantiated
	ErrInvalidTemplate = errors.Named("invalid_template")

	// ErrPoolExhausted is returned when every slot is active and growth is disabled or capped
	ErrPoolExhausted = errors.Named("pool_exhausted")

	// ErrPoolClosed is returned by pools and registries after teardown
	ErrPoolClosed = errors.Named("pool_closed")

	// ErrAlreadyConfigured rejects reconfiguring a category whose pool already exists
	ErrAlreadyConfigured = errors.Named("pool_already_configured")
)
