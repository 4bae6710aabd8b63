package likes

import "errors"

var (
	ErrInvalidTarget   = errors.New("target type must be rating, review or comment")
	ErrInvalidTargetID = errors.New("invalid target id")
)
