package core

import "errors"

var (
	ErrNotFound    = errors.New("svgurl: not found")
	ErrInvalidPath = errors.New("svgurl: invalid resource path")
	ErrOutsideRoot = errors.New("svgurl: file is outside the svg root")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
