package gemd

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	// URLMaxLength is the request-line byte limit the protocol enforces.
	URLMaxLength = 1024
	// requestBufferSize is the size of the single read used to capture the
	// request line. It is deliberately larger than URLMaxLength so that an
	// oversized line is detected by byte count rather than truncated
	// silently.
	requestBufferSize = 2048
)

// Request contains the data of the client request.
type Request struct {
	URL        *url.URL
	RemoteAddr net.Addr
}

// Handler is the interface a struct needs to implement to be able to handle
// Gemini requests.
type Handler interface {
	Handle(r Request) Response
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(r Request) Response

func (f HandlerFunc) Handle(r Request) Response {
	return f(r)
}

// Server serves Gemini requests over TLS. Each accepted connection is
// handled in its own goroutine and carries exactly one request/response
// exchange. The zero value is not usable; Handler and TLSConfig must be
// set.
type Server struct {
	Addr      string
	Handler   Handler
	TLSConfig *tls.Config

	// ReadTimeout and WriteTimeout bound the request read and the response
	// write. Zero means no deadline, matching the bare protocol.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxConns caps the number of connections handled at once. Zero means
	// unbounded fan-out.
	MaxConns int

	Logger zerolog.Logger
}

// ListenAndServe creates a TLS server on the specified address and passes
// new connections to the given handler. Each request is handled in a
// separate goroutine. The address defaults to 127.0.0.1:1965.
func ListenAndServe(addr, certFile, keyFile string, handler Handler) error {
	cer, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return fmt.Errorf("failed to load certificates: %v", err)
	}

	srv := &Server{
		Addr:      addr,
		Handler:   handler,
		TLSConfig: &tls.Config{Certificates: []tls.Certificate{cer}},
		Logger:    zerolog.Nop(),
	}
	return srv.ListenAndServe()
}

// ListenAndServe listens on srv.Addr and serves until the listener fails.
func (srv *Server) ListenAndServe() error {
	addr := srv.Addr
	if addr == "" {
		addr = "127.0.0.1:1965"
	}

	ln, err := tls.Listen("tcp", addr, srv.TLSConfig)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}
	defer ln.Close()

	return srv.Serve(ln)
}

// Serve accepts connections from ln until the listener is closed. Accept
// errors are logged and the loop continues; a connection's failure never
// reaches the loop or any other connection.
func (srv *Server) Serve(ln net.Listener) error {
	var sem chan struct{}
	if srv.MaxConns > 0 {
		sem = make(chan struct{}, srv.MaxConns)
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			srv.Logger.Warn().Err(err).Msg("accept error")
			continue
		}

		if sem != nil {
			sem <- struct{}{}
		}
		go func() {
			defer func() {
				if sem != nil {
					<-sem
				}
			}()
			srv.handleConnection(conn)
		}()
	}
}

func (srv *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	if srv.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(srv.ReadTimeout))
	}

	response := srv.readRequest(conn)

	if srv.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(srv.WriteTimeout))
	}
	if _, err := conn.Write(response.Bytes()); err != nil {
		srv.Logger.Error().Err(err).Msg("failed to send response to client")
	}
}

// readRequest captures and validates the request line, then dispatches to
// the handler. Every failure mode maps to a BadRequest response; nothing
// here can take down the accept loop.
func (srv *Server) readRequest(conn net.Conn) Response {
	buf := make([]byte, requestBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return BadRequest(fmt.Sprintf("Failed to get url : %v", err))
	}
	if n > URLMaxLength {
		return BadRequest("url exceeds 1024 bytes")
	}

	if !utf8.Valid(buf[:n]) {
		return BadRequest("url is not valid UTF-8")
	}
	line := string(buf[:n])

	// The wire grammar terminates the request with CRLF; net/url refuses
	// control characters, so the terminator comes off before parsing.
	requestURL, err := url.Parse(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return BadRequest(fmt.Sprintf("url is not valid : %v", err))
	}
	if !requestURL.IsAbs() {
		return BadRequest("url is not absolute")
	}

	srv.Logger.Info().
		Stringer("remote", conn.RemoteAddr()).
		Str("url", strings.TrimSpace(line)).
		Msg("request")

	return srv.Handler.Handle(Request{URL: requestURL, RemoteAddr: conn.RemoteAddr()})
}
