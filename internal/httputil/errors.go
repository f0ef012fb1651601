package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidDate      = errors.New("dates must be specified as YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("months must be specified as YYYY-MM")
)
