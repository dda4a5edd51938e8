package irc

import (
	"bufio"
	"context"
	"errors"
	"net"
	"time"

	"github.com/vovakirdan/wirechat-ircd/internal/proto"
)

const writeTimeout = 10 * time.Second

// Conn is a line-oriented client connection.
type Conn interface {
	// ReadLine blocks until one full line is available.
	ReadLine(ctx context.Context) (string, error)
	// WriteLine writes one CRLF-terminated line.
	WriteLine(ctx context.Context, line string) error
	Close() error
	RemoteAddr() string
}

type tcpConn struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewTCPConn wraps a stream connection, limiting lines to maxLine bytes.
func NewTCPConn(conn net.Conn, maxLine int) Conn {
	if maxLine <= 0 {
		maxLine = proto.MaxLineBytes
	}
	return &tcpConn{conn: conn, r: bufio.NewReaderSize(conn, maxLine)}
}

func (c *tcpConn) ReadLine(_ context.Context) (string, error) {
	line, err := c.r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		// Skip the rest of the oversized line.
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = c.r.ReadSlice('\n')
		}
		if err != nil {
			return "", err
		}
		return "", proto.ErrLineTooLong
	}
	if err != nil {
		return "", err
	}
	return string(line), nil
}

func (c *tcpConn) WriteLine(_ context.Context, line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	_, err := c.conn.Write([]byte(line))
	return err
}

func (c *tcpConn) Close() error { return c.conn.Close() }

func (c *tcpConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
