package models

import "errors"

// ErrValidation marks input rejected on the client before any request is made.
var ErrValidation = errors.New("validation error")
