package factory

import "context"

// Pipeline defines the lifecycle and refresh operations of the dashboard pipeline
type Pipeline interface {
	Refresh(ctx context.Context)
	Start()
	Close()
	IsInterfaceNil() bool
}

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
}
