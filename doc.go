// Package gemd implements the Gemini protocol: a server with a static file
// handler and an echo handler, and a small client for talking to other
// servers.
//
// A connection carries exactly one exchange: the client sends a single
// URL-bearing request line, the server answers with one status line plus an
// optional body, and the connection closes. There is no keep-alive.
//
// URLs with IDNs in them, ie domains with Unicode, are handled by the client.
// It will convert to punycode for DNS and for sending to the server, but
// accept certs with either punycode or Unicode as the hostname.
package gemd
