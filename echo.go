package gemd

import (
	"fmt"
	"net/url"
	"strings"
)

const echoHelp = `# Echo server

This server repeats whatever you send it.

=> /echo Send some text
`

// EchoHandler answers /echo requests with the percent-decoded query string
// and prompts for input when the query is missing. Every other path gets a
// static gemtext help page.
type EchoHandler struct{}

func (EchoHandler) Handle(r Request) Response {
	segment := strings.TrimPrefix(r.URL.Path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}

	if segment != "echo" {
		return Success("text/gemini", []byte(echoHelp))
	}

	if r.URL.RawQuery == "" {
		return Input("Please enter some text")
	}

	decoded, err := url.PathUnescape(r.URL.RawQuery)
	if err != nil {
		return BadRequest(fmt.Sprintf("query is not valid : %v", err))
	}
	return Success("text/plain", []byte(decoded+"\r\n"))
}
