package main

import (
	"bufio"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Conn wraps a client's TCP connection.
//
// The read half is line buffered. The write half is used directly: the
// connection's writer goroutine is the only writer to the socket and always
// writes whole lines.
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewConn initializes a Conn struct.
func NewConn(conn net.Conn) Conn {
	return Conn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// Close closes the underlying connection.
func (c Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote network address.
func (c Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// ReadLine reads one line from the connection. The line terminator is
// stripped.
func (c Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "error reading")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Write writes a string to the connection. The string must include its line
// terminator.
func (c Conn) Write(s string) error {
	sz, err := c.conn.Write([]byte(s))
	if err != nil {
		return errors.Wrap(err, "error writing")
	}

	if sz != len(s) {
		return errors.New("short write")
	}

	return nil
}
