package redis

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve runs a scripted RESP peer on the server side of a pipe: it
// reads full command arrays and answers from the replies queue. Reads
// and writes run in separate goroutines because net.Pipe is unbuffered
// and a pipelined client flushes every command before reading anything.
func serve(t *testing.T, conn net.Conn, replies []string) {
	t.Helper()
	ready := make(chan int, len(replies))

	go func() {
		rd := bufio.NewReader(conn)
		for i := range replies {
			// Consume one command array: *N then N bulk strings.
			header, err := rd.ReadString('\n')
			if err != nil {
				return
			}
			n, err := strconv.Atoi(strings.TrimRight(header[1:], "\r\n"))
			if err != nil {
				return
			}
			for j := 0; j < n; j++ {
				if _, err := rd.ReadString('\n'); err != nil { // $len
					return
				}
				if _, err := rd.ReadString('\n'); err != nil { // payload
					return
				}
			}
			ready <- i
		}
	}()

	go func() {
		for range replies {
			i := <-ready
			if _, err := conn.Write([]byte(replies[i])); err != nil {
				return
			}
		}
	}()
}

func pipeConn(t *testing.T, replies []string) Conn {
	t.Helper()
	client, server := net.Pipe()
	serve(t, server, replies)
	return &respConn{conn: client, rd: bufio.NewReader(client), wr: bufio.NewWriter(client)}
}

func TestRespSimpleString(t *testing.T) {
	c := pipeConn(t, []string{"+PONG\r\n"})
	defer c.Close()

	reply, err := c.Do(context.Background(), "PING")
	require.NoError(t, err)
	assert.Equal(t, "PONG", reply)
}

func TestRespBulkAndNil(t *testing.T) {
	c := pipeConn(t, []string{"$9\r\nkey:00042\r\n", "$-1\r\n"})
	defer c.Close()

	replies, err := c.Pipeline(context.Background(), []Command{
		{Name: "RANDOMKEY"},
		{Name: "RANDOMKEY"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"key:00042", ""}, replies)
}

func TestRespServerError(t *testing.T) {
	c := pipeConn(t, []string{"-ERR unknown command\r\n"})
	defer c.Close()

	_, err := c.Do(context.Background(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRespArrayFlattening(t *testing.T) {
	c := pipeConn(t, []string{"*2\r\n$1\r\na\r\n$1\r\nb\r\n"})
	defer c.Close()

	reply, err := c.Do(context.Background(), "KEYS", "*")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", reply)
}

func TestRespBulkWithCRLFPayload(t *testing.T) {
	payload := "line1\r\nline2"
	c := pipeConn(t, []string{"$" + strconv.Itoa(len(payload)) + "\r\n" + payload + "\r\n"})
	defer c.Close()

	reply, err := c.Do(context.Background(), "INFO")
	require.NoError(t, err)
	assert.True(t, strings.Contains(reply, "line2"))
}
