package backend

import (
	"context"
	"log/slog"
	"sync"

	"backhand/transport"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Front runs the accept loop: every connection the listener yields is
// handed to the back on its own goroutine.
type Front struct {
	l    transport.ConnListener
	back Back

	logger *slog.Logger

	closeListener func()
	wg            sync.WaitGroup
}

func NewFront(l transport.ConnListener, back Back, logger *slog.Logger) *Front {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Front{l: l, back: back, logger: logger}
}

func (f *Front) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	f.closeListener = cancel

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for {
			con, err := f.l.Accept(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) &&
					!errors.Is(err, transport.ErrConnListnerClosed) {
					f.logger.Error(
						"unexpected error when accepting connection",
						"error", err.Error(),
					)
				}
				return
			}

			logger := f.logger.With(
				"conn", uuid.NewString(),
				"remote", con.RemoteAddr().String(),
			)
			logger.Debug("connection accepted")

			f.wg.Add(1)
			go func() {
				defer f.wg.Done()
				if err := f.back.Accept(ctx, con); err != nil {
					logger.Error("error while serving connection", "error", err)
				}
			}()
		}
	}()
}

// Close stops accepting and waits for in-flight connections to finish.
func (f *Front) Close() error {
	f.closeListener()
	f.wg.Wait()
	return nil
}
