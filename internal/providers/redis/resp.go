package redis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// respConn is a minimal RESP client over a single TCP connection. It
// exists because this module treats the key-value backend as an opaque
// wire protocol: only the handful of commands the diagnostics provider
// needs are exercised, so a full driver would be dead weight.
type respConn struct {
	conn net.Conn
	rd   *bufio.Reader
	wr   *bufio.Writer
}

// Dial connects to addr and authenticates when password is non-empty.
func Dial(ctx context.Context, addr, password string) (Conn, error) {
	d := net.Dialer{}
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c := &respConn{
		conn: nc,
		rd:   bufio.NewReader(nc),
		wr:   bufio.NewWriter(nc),
	}
	if password != "" {
		if _, err := c.Do(ctx, "AUTH", password); err != nil {
			nc.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
	}
	return c, nil
}

func (c *respConn) Do(ctx context.Context, cmd string, args ...string) (string, error) {
	replies, err := c.Pipeline(ctx, []Command{{Name: cmd, Args: args}})
	if err != nil {
		return "", err
	}
	return replies[0], nil
}

func (c *respConn) Pipeline(ctx context.Context, cmds []Command) ([]string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	for _, cmd := range cmds {
		if err := c.writeCommand(cmd); err != nil {
			return nil, fmt.Errorf("write %s: %w", cmd.Name, err)
		}
	}
	if err := c.wr.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	replies := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		reply, err := c.readReply()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.Name, err)
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

func (c *respConn) Close() error {
	return c.conn.Close()
}

func (c *respConn) writeCommand(cmd Command) error {
	fmt.Fprintf(c.wr, "*%d\r\n", 1+len(cmd.Args))
	if err := c.writeBulk(cmd.Name); err != nil {
		return err
	}
	for _, a := range cmd.Args {
		if err := c.writeBulk(a); err != nil {
			return err
		}
	}
	return nil
}

func (c *respConn) writeBulk(s string) error {
	_, err := fmt.Fprintf(c.wr, "$%d\r\n%s\r\n", len(s), s)
	return err
}

// readReply parses one RESP reply. Nil bulk/array replies normalize to
// ""; array replies are flattened newline-joined.
func (c *respConn) readReply() (string, error) {
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if len(line) == 0 {
		return "", fmt.Errorf("empty reply line")
	}

	payload := line[1:]
	switch line[0] {
	case '+':
		return payload, nil
	case ':':
		return payload, nil
	case '-':
		return "", fmt.Errorf("server error: %s", payload)
	case '$':
		n, err := strconv.Atoi(payload)
		if err != nil {
			return "", fmt.Errorf("bad bulk length %q", payload)
		}
		if n < 0 {
			return "", nil // nil bulk
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(c.rd, buf); err != nil {
			return "", fmt.Errorf("read bulk: %w", err)
		}
		return string(buf[:n]), nil
	case '*':
		n, err := strconv.Atoi(payload)
		if err != nil {
			return "", fmt.Errorf("bad array length %q", payload)
		}
		if n < 0 {
			return "", nil // nil array
		}
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			part, err := c.readReply()
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, "\n"), nil
	default:
		return "", fmt.Errorf("unknown reply type %q", line[0])
	}
}

func (c *respConn) readLine() (string, error) {
	line, err := c.rd.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
