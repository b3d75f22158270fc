// Package http implements the wire level of HTTP/1.1: immutable
// request/response values, a request decoder and a response encoder.
//
// Scope is deliberately narrow. Bodies are delimited by Content-Length
// only; transfer codings, trailers and HTTP/2+ are not supported.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
