package boxcheck

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

// DIParams holds dependencies needed to create a Client via DI.
type DIParams struct {
	dig.In

	Logger *zap.Logger
	Config *Config `optional:"true"`
}

// ProvideClient creates a Client for dependency injection.
//
// Example:
//
//	container := dig.New()
//	container.Provide(boxcheck.ProvideClient)
//	container.Invoke(func(c *boxcheck.Client) {
//	    c.Start(ctx)
//	})
func ProvideClient(params DIParams) (*Client, error) {
	cfg := DefaultConfig()
	if params.Config != nil {
		copied := *params.Config
		cfg = &copied
	}
	cfg.Logger = params.Logger

	return New(cfg)
}

// RegisterWithContainer registers ProvideClient with a dig container.
func RegisterWithContainer(container *dig.Container) error {
	return container.Provide(ProvideClient)
}

// StartParams holds dependencies for starting a Client via DI.
type StartParams struct {
	dig.In

	Client  *Client
	Context context.Context `optional:"true"`
}

// StartClient starts the import worker when invoked via DI.
//
//	container.Invoke(boxcheck.StartClient)
func StartClient(params StartParams) error {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return params.Client.Start(ctx)
}
