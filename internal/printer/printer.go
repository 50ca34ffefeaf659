// Package printer sends ZPL label commands to warehouse label printers.
package printer

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPort is the raw print port Zebra printers listen on.
const DefaultPort = "9100"

// ZPLCommand builds the single-field label for sku.
// Command prefixes and control bytes in sku are sent hex escaped under ^FH,
// so the field cannot end early or start commands of its own.
func ZPLCommand(sku string) string {
	if !needsEscape(sku) {
		return fmt.Sprintf("^XA^FO50,50^ADN,36,20^FD%s^FS^XZ", sku)
	}
	return fmt.Sprintf("^XA^FO50,50^ADN,36,20^FH_^FD%s^FS^XZ", escapeFieldData(sku))
}

func escapable(c byte) bool {
	return c == '^' || c == '~' || c == '_' || c < 0x20 || c == 0x7f
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if escapable(s[i]) {
			return true
		}
	}
	return false
}

// escapeFieldData writes every escapable byte as _XX, the ^FH_ hex form.
func escapeFieldData(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; escapable(c) {
			fmt.Fprintf(&b, "_%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Emitter delivers a label command to a printer.
type Emitter interface {
	Emit(ctx context.Context, command string) error
}

// TCPEmitter writes commands to a raw socket printer.
type TCPEmitter struct {
	address string
	dialer  net.Dialer
}

// NewTCPEmitter targets address, adding DefaultPort when none is given.
func NewTCPEmitter(address string, timeout time.Duration) *TCPEmitter {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(strings.Trim(address, "[]"), DefaultPort)
	}
	return &TCPEmitter{address: address, dialer: net.Dialer{Timeout: timeout}}
}

// Address is the host:port commands are sent to.
func (e *TCPEmitter) Address() string {
	return e.address
}

// Emit opens a connection, writes command and closes.
func (e *TCPEmitter) Emit(ctx context.Context, command string) error {
	conn, err := e.dialer.DialContext(ctx, "tcp", e.address)
	if err != nil {
		return fmt.Errorf("connect to printer %s: %w", e.address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write([]byte(command)); err != nil {
		return fmt.Errorf("write to printer %s: %w", e.address, err)
	}
	return nil
}

// LogEmitter only logs the command. Used when no printer is configured.
type LogEmitter struct{}

// Emit logs command at info level.
func (LogEmitter) Emit(_ context.Context, command string) error {
	log.Info().
		Str("component", "printer").
		Str("zpl", command).
		Msg("Label command (no printer configured)")
	return nil
}
