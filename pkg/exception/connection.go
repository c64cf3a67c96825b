package exception

import "errors"

var (
	ErrConnectionUnsupportedDriver = errors.New("connection: unsupported driver")
	ErrConnectionEmptyPath         = errors.New("connection: empty sqlite path")
)
