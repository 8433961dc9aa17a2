package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

var errNotListening = errors.New("server: Serve called before Listen")

// Server runs the application handler on one TCP port. Listen and Serve are
// split so a port conflict fails application startup instead of surfacing later.
type Server interface {
	// Listen binds the configured port and returns the bound address.
	Listen() (net.Addr, error)
	// Serve blocks until Shutdown. It returns nil after a graceful shutdown.
	Serve() error
	Shutdown(ctx context.Context) error
}

type server struct {
	httpSrv  *http.Server
	listener net.Listener
	log      *zap.Logger
}

func newServer(log *zap.Logger, conf Config, handler http.Handler) Server {
	return &server{
		httpSrv: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(conf.Port)),
			Handler:           handler,
			ReadHeaderTimeout: conf.Connection.ReadHeaderTimeout,
			ReadTimeout:       conf.Connection.ReadTimeout,
			WriteTimeout:      conf.Connection.WriteTimeout,
			IdleTimeout:       conf.Connection.IdleTimeout,
			MaxHeaderBytes:    conf.Connection.MaxHeaderBytes,
			ErrorLog:          zap.NewStdLog(log.Named("http")),
		},
		log: log,
	}
}

func (s *server) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return nil, err
	}
	s.listener = ln
	return ln.Addr(), nil
}

func (s *server) Serve() error {
	if s.listener == nil {
		return errNotListening
	}
	s.log.Info("serving HTTP", zap.Stringer("addr", s.listener.Addr()))
	if err := s.httpSrv.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
