package lightlab

import "errors"

var (
	ErrInvalidLightSpec  = errors.New("invalid light spec")
	ErrInvalidBody       = errors.New("invalid body")
	ErrUnknownField      = errors.New("unknown binding field")
	ErrInvalidBinding    = errors.New("invalid binding")
	ErrForeignEntity     = errors.New("entity belongs to another scene graph")
	ErrNilEntity         = errors.New("nil entity")
	ErrMissingResource   = errors.New("missing resource")
	ErrRendererInstalled = errors.New("renderer already installed")
	ErrInvalidConfig     = errors.New("invalid config")
)
