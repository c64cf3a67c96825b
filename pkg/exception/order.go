package exception

import "errors"

var (
	ErrOrderNilRepository     = errors.New("order: nil repository")
	ErrOrderUnsupportedType   = errors.New("order: unsupported type")
	ErrOrderInvalidTransition = errors.New("order: invalid state transition")
	ErrOrderQueueFull         = errors.New("order: queue full")
	ErrOrderInvalidWorker     = errors.New("order: invalid worker config")
)
