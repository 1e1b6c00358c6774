package conductor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

/* A Service is anything with a lifecycle the Conductor manages.
 *
 * Run must return promptly: do the work in a goroutine, send on
 * started once ready, then wait for a context on stop, shut down
 * within its deadline and send on stopped.
 */
type Service interface {
	Run(started, stopped chan bool, stop chan context.Context) error
}

type namedService struct {
	name    string
	service Service
	started chan bool
	stopped chan bool
	stop    chan context.Context
}

type Conductor struct {
	services    []*namedService
	hookSignals bool
	noisy       bool
	timeout     time.Duration
	log         logrus.FieldLogger
	halt        chan struct{}
	haltOnce    sync.Once
}

type Option func(*Conductor)

// HookSignals stops all services on SIGINT/SIGTERM.
func HookSignals() Option {
	return func(c *Conductor) {
		c.hookSignals = true
	}
}

// Noisy logs each service as it starts and stops.
func Noisy() Option {
	return func(c *Conductor) {
		c.noisy = true
	}
}

func StopTimeout(d time.Duration) Option {
	return func(c *Conductor) {
		c.timeout = d
	}
}

func NewConductor(opts ...Option) *Conductor {
	c := &Conductor{
		timeout: 10 * time.Second,
		log:     logrus.StandardLogger(),
		halt:    make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Conductor) Service(name string, s Service) {
	c.services = append(c.services, &namedService{
		name:    name,
		service: s,
		started: make(chan bool),
		stopped: make(chan bool),
		stop:    make(chan context.Context),
	})
}

// Start runs every service in the order added and returns a
// channel that closes once they have all stopped again.
func (c *Conductor) Start() chan bool {
	done := make(chan bool)

	running := []*namedService{}
	for _, s := range c.services {
		if err := s.service.Run(s.started, s.stopped, s.stop); err != nil {
			c.log.WithError(err).Errorf("Failed to start service %s", s.name)
			c.stopAll(running)
			close(done)
			return done
		}
		<-s.started
		running = append(running, s)
		if c.noisy {
			c.log.Infof("Started service: %s", s.name)
		}
	}

	go func() {
		if c.hookSignals {
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigs)

			select {
			case sig := <-sigs:
				c.log.Infof("Received %s, shutting down", sig)
			case <-c.halt:
			}
		} else {
			<-c.halt
		}

		c.stopAll(running)
		close(done)
	}()

	return done
}

// Stop asks a started Conductor to shut everything down. Safe to
// call more than once.
func (c *Conductor) Stop() {
	c.haltOnce.Do(func() {
		close(c.halt)
	})
}

// stopAll stops services in reverse start order.
func (c *Conductor) stopAll(running []*namedService) {
	for i := len(running) - 1; i >= 0; i-- {
		s := running[i]
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		s.stop <- ctx
		<-s.stopped
		cancel()
		if c.noisy {
			c.log.Infof("Stopped service: %s", s.name)
		}
	}
}
