package http

// Status codes this module cares about. 411 is reserved for a
// persistent-connection variant of the back-end; the baseline serves a
// single exchange per connection and never emits it.
const (
	StatusOK                  uint = 200
	StatusNoContent           uint = 204
	StatusBadRequest          uint = 400
	StatusNotFound            uint = 404
	StatusRequestTimeout      uint = 408
	StatusLengthRequired      uint = 411
	StatusContentTooLarge     uint = 413
	StatusURITooLong          uint = 414
	StatusInternalServerError uint = 500
	StatusNotImplemented      uint = 501
)

var reasonPhrases = map[uint]string{
	StatusOK:                  "OK",
	StatusNoContent:           "No Content",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusRequestTimeout:      "Request Timeout",
	StatusLengthRequired:      "Length Required",
	StatusContentTooLarge:     "Content Too Large",
	StatusURITooLong:          "URI Too Long",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
}

// ReasonPhrase returns the canonical reason phrase for code, or ""
// when the code is unknown. The phrase is advisory on the wire anyway.
func ReasonPhrase(code uint) string { return reasonPhrases[code] }
