// Package session turns input lines into dispatches and owns the task
// store, the reply sink and the optional repository of one conversation.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/wonky/internal/commands"
	"github.com/sandeepkv93/wonky/internal/logging"
	"github.com/sandeepkv93/wonky/internal/model"
	"github.com/sandeepkv93/wonky/internal/reply"
	"github.com/sandeepkv93/wonky/internal/storage"
)

// ErrStorage marks failures of the persistence collaborator. They are the
// only errors ProcessLine returns.
var ErrStorage = errors.New("session: storage failure")

type State string

const (
	StateActive     State = "Active"
	StateTerminated State = "Terminated"
)

type Options struct {
	// Repository is nil for sessions that never persist.
	Repository storage.Repository
	Logger     *log.Logger
	ExitDelay  time.Duration
}

type Session struct {
	repo       storage.Repository
	logger     *log.Logger
	exitDelay  time.Duration
	store      *model.Store
	sink       *reply.Sink
	dispatcher *commands.Dispatcher
	state      State
	loading    bool
}

func New(opts Options) *Session {
	s := &Session{
		repo:      opts.Repository,
		logger:    opts.Logger,
		exitDelay: opts.ExitDelay,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.exitDelay < 0 {
		s.exitDelay = 0
	}
	s.Reset()
	return s
}

// Reset rebuilds the store, sink and dispatcher and reactivates the session.
// The repository is left untouched.
func (s *Session) Reset() {
	s.store = model.NewStore()
	s.sink = reply.NewSink()
	s.dispatcher = commands.NewDispatcher(s.store, s.sink, s.logger)
	s.state = StateActive
	s.loading = false
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Active() bool {
	return s.state == StateActive
}

// ExitDelay is the best-effort pause front-ends keep between showing the
// farewell and ending the process.
func (s *Session) ExitDelay() time.Duration {
	return s.exitDelay
}

// Tasks returns a copy of the current task list.
func (s *Session) Tasks() []model.Task {
	return s.store.All()
}

// Welcome queues the greeting for the next flush.
func (s *Session) Welcome() {
	s.sink.Welcome()
}

// Flush returns and clears the reply for the current turn.
func (s *Session) Flush() reply.Reply {
	return s.sink.Flush()
}

// ProcessLine handles one input line. It does nothing once the session is
// terminated. User mistakes only produce reply text; the returned error is
// always a wrapped ErrStorage or a dispatch failure of a collaborator.
func (s *Session) ProcessLine(ctx context.Context, line string) error {
	if s.state == StateTerminated {
		return nil
	}
	cmd, arg := commands.Resolve(line)
	if cmd == commands.None {
		if !s.loading {
			token, _ := commands.Split(line)
			s.sink.UnknownCommand(token)
			s.sink.Suggest(commands.Suggest(token))
		}
		return nil
	}
	if cmd == commands.TypeBye && s.loading {
		return nil
	}

	res, err := s.dispatcher.Dispatch(cmd, arg)
	if err != nil {
		return err
	}
	if res.Mutated && !s.loading {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	if res.Exit {
		s.state = StateTerminated
		s.logger.Info("session terminated")
	}
	return nil
}

func (s *Session) storageErr(op string, err error) error {
	s.logger.Error("storage failure", "op", op, "err", err)
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
