package netconn

import (
	"io"
	"net"
	"strings"
	"testing"

	"backhand/backend"
	"backhand/handler"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type NetConnTestSuite struct {
	suite.Suite
}

func TestNetConnTestSuite(t *testing.T) {
	suite.Run(t, new(NetConnTestSuite))
}

// End to end over a real TCP socket: dial, send one request, read the
// full response until the back-end closes the connection.
func (s *NetConnTestSuite) TestServeOverTCP() {
	defer goleak.VerifyNone(s.T())

	l, err := Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	back := backend.New(handler.Text("Hello world!"), nil, clock.New(), backend.Options{})
	front := backend.NewFront(l, back, nil)
	front.Start()

	con, err := net.Dial("tcp", l.Addr().String())
	s.Require().NoError(err)
	defer con.Close()

	_, err = con.Write([]byte("GET / HTTP/1.1\r\nHost:localhost\r\n\r\n"))
	s.Require().NoError(err)

	out, err := io.ReadAll(con)
	s.Require().NoError(err)

	s.True(strings.HasPrefix(string(out), "HTTP/1.1 200 OK\r\n"))
	s.Contains(string(out), "Hello world!")

	s.Require().NoError(front.Close())
}

func (s *NetConnTestSuite) TestWrappedAddrs() {
	l, err := Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	defer l.Close()

	addr := l.Addr().String()
	s.True(strings.HasPrefix(addr, "127.0.0.1:"))
	s.NotContains(addr, "/")
}
