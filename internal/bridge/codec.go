// Package bridge implements the two-way JS call protocol: envelope
// decoding from the title side-channel, script-literal escaping, and the
// result decoding rules for synchronous evaluation.
package bridge

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotBridgeMessage marks a title payload that is not a bridge
// envelope. Ordinary page titles land here constantly; callers log at
// debug level and drop it.
var ErrNotBridgeMessage = errors.New("bridge: not a bridge message")

// Message types carried over the title channel.
const (
	TypeInvoke = "invoke"
	TypeEval   = "eval"
)

// Envelope is the decoded side-channel message. For invoke, Function/
// ID/Param are set; for eval, UID/Result.
type Envelope struct {
	Type     string          `json:"type"`
	Function string          `json:"function,omitempty"`
	ID       string          `json:"id,omitempty"`
	Param    *string         `json:"param,omitempty"`
	UID      string          `json:"uid,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// DecodeTitle parses a document title as a bridge envelope.
func DecodeTitle(title string) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(title), &env); err != nil {
		return nil, ErrNotBridgeMessage
	}
	if env.Type != TypeInvoke && env.Type != TypeEval {
		return nil, ErrNotBridgeMessage
	}
	return &env, nil
}

// ParamValue returns the invoke parameter, mapping the literal
// "undefined" (and absence) to none.
func (e *Envelope) ParamValue() (string, bool) {
	if e.Param == nil || *e.Param == "undefined" {
		return "", false
	}
	return *e.Param, true
}

// NoResult is the sentinel returned when evaluation produced nothing:
// the script yielded undefined/null, the dialog was cancelled, or the
// window closed mid-wait.
type NoResult struct{}

// DecodeResult applies the evaluation result rules: absent, "undefined"
// and "null" become NoResult; the empty string stays an empty string;
// anything else must parse as JSON.
func DecodeResult(raw *string) (any, error) {
	if raw == nil {
		return NoResult{}, nil
	}
	switch *raw {
	case "undefined", "null":
		return NoResult{}, nil
	case "":
		return "", nil
	}
	var v any
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// EscapeScript escapes s so it survives re-injection as a double-quoted
// JS string literal.
func EscapeScript(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewCallID generates a fresh id for one in-flight evaluation.
func NewCallID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewBridgeToken generates the short per-window bridge token embedded in
// the bootstrap script.
func NewBridgeToken() string {
	return NewCallID()[:8]
}
