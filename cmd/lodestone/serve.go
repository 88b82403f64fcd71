package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	lshttp "github.com/fwojciec/lodestone/http"
)

// shutdownTimeout bounds how long in-flight requests get after the
// context is cancelled.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           lshttp.NewServer(deps.Characters, deps.Definitions, deps.Metrics.Handler(), deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	fmt.Fprintf(deps.Stderr, "listening on %s\n", c.Addr)

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
