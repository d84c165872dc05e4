package location

import "errors"

var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrLocationNameExists = errors.New("location with this name already exists")
)
