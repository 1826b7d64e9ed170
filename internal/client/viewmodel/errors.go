package viewmodel

import "errors"

var (
	ErrNotLoaded   = errors.New("collection not loaded")
	ErrUnknownCat  = errors.New("cat is not in the collection")
	ErrAlreadyBusy = errors.New("cat is already being deleted")
	ErrClosed      = errors.New("view closed")
)
