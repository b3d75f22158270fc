package backend

import (
	"time"

	"backhand/http"
)

type Options struct {
	Decode http.DecodeOptions
	Encode http.EncodeOptions

	Timeout TimeoutOptions
}

// TimeoutOptions bound the two blocking phases of an exchange.
// Zero means no deadline; the core itself does no other timeout
// bookkeeping.
type TimeoutOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
