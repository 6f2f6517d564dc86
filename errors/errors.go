package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrAuthExpired         = fmt.Errorf("participant token expired")
	ErrNetwork             = fmt.Errorf("network failure")
	ErrPaginationExhausted = fmt.Errorf("no further transcript history")
	ErrChannelClosed       = fmt.Errorf("event channel closed")
	ErrMalformedPayload    = fmt.Errorf("malformed server payload")
)
