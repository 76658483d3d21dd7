package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/wonky/internal/model"
	"github.com/sandeepkv93/wonky/internal/reply"
)

// Result tells the caller what a dispatch did.
type Result struct {
	Mutated  bool
	Exit     bool
	Rejected ErrorCode
}

// Dispatcher validates argument shapes and runs commands against one store,
// writing replies to one sink.
type Dispatcher struct {
	store  *model.Store
	sink   *reply.Sink
	logger *log.Logger
}

func NewDispatcher(store *model.Store, sink *reply.Sink, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{store: store, sink: sink, logger: logger}
}

// Dispatch runs cmd with its argument text. User-input problems become
// reply text and a nil error; only failures of collaborators are returned.
func (d *Dispatcher) Dispatch(cmd Type, arg string) (Result, error) {
	spec, ok := Lookup(cmd)
	if !ok {
		return d.reject(&CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("Sorry, I don't know what %q means.", cmd)})
	}
	args := strings.Fields(arg)
	if !spec.accepts(len(args)) {
		return d.reject(&CommandError{
			Code:    ErrCodeWrongArity,
			Message: fmt.Sprintf("Wrong number of arguments for %q. Usage: %s", spec.Type, spec.Usage),
		})
	}

	res, err := d.run(spec.Type, args, strings.TrimSpace(arg))
	if err != nil {
		var ce *CommandError
		if errors.As(err, &ce) {
			return d.reject(ce)
		}
		d.logger.Error("dispatch failed", "command", cmd, "err", err)
		return Result{}, fmt.Errorf("%s: %w", cmd, err)
	}
	d.logger.Debug("dispatched", "command", cmd, "mutated", res.Mutated, "tasks", d.store.Len())
	return res, nil
}

func (d *Dispatcher) reject(ce *CommandError) (Result, error) {
	d.sink.Say("%s", ce.Message)
	d.logger.Debug("rejected", "code", ce.Code, "message", ce.Message)
	return Result{Rejected: ce.Code}, nil
}

func (d *Dispatcher) run(cmd Type, args []string, text string) (Result, error) {
	switch cmd {
	case TypeList:
		d.sink.TaskList(d.store.All())
		return Result{}, nil
	case TypeTodo:
		return d.add(model.KindTodo, text, nil)
	case TypeDeadline:
		return d.addDeadline(text)
	case TypeEvent:
		return d.addEvent(text)
	case TypeMark:
		return d.setDone(args[0], true)
	case TypeUnmark:
		return d.setDone(args[0], false)
	case TypeDelete:
		return d.delete(args[0])
	case TypeFind:
		d.sink.Matches(text, d.store.Find(text))
		return Result{}, nil
	case TypeHelp:
		d.sink.SayMarkdown(HelpMarkdown())
		return Result{}, nil
	case TypeBye:
		d.sink.Farewell()
		return Result{Exit: true}, nil
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("Sorry, I don't know what %q means.", cmd)}
	}
}

// add builds a task of kind from desc, lets details fill in the
// kind-specific fields and appends it to the store.
func (d *Dispatcher) add(kind model.Kind, desc string, details func(*model.Task)) (Result, error) {
	t, err := model.NewTask(kind, desc)
	if err != nil {
		return Result{}, invalidTask(err)
	}
	if details != nil {
		details(&t)
	}
	pos, added, err := d.store.Add(t)
	if err != nil {
		return Result{}, invalidTask(err)
	}
	d.sink.TaskAdded(added, pos, d.store.Len())
	return Result{Mutated: true}, nil
}

func (d *Dispatcher) addDeadline(text string) (Result, error) {
	desc, by, found := strings.Cut(text, "/by")
	if !found || strings.TrimSpace(by) == "" || strings.TrimSpace(desc) == "" {
		return Result{}, usageError(TypeDeadline)
	}
	return d.add(model.KindDeadline, desc, func(t *model.Task) {
		t.By = strings.TrimSpace(by)
	})
}

func (d *Dispatcher) addEvent(text string) (Result, error) {
	desc, period, found := strings.Cut(text, "/from")
	if !found {
		return Result{}, usageError(TypeEvent)
	}
	from, to, found := strings.Cut(period, "/to")
	if !found || strings.TrimSpace(desc) == "" || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return Result{}, usageError(TypeEvent)
	}
	return d.add(model.KindEvent, desc, func(t *model.Task) {
		t.From = strings.TrimSpace(from)
		t.To = strings.TrimSpace(to)
	})
}

func (d *Dispatcher) setDone(raw string, done bool) (Result, error) {
	n, err := parseTaskNumber(raw)
	if err != nil {
		return Result{}, err
	}
	task, changed, err := d.store.SetDone(n-1, done)
	if err != nil {
		return Result{}, d.indexError(err)
	}
	if !changed {
		return Result{}, &CommandError{
			Code:    ErrCodeAlreadySet,
			Message: fmt.Sprintf("Task %q is already marked as %s.", task.Description, model.DoneLiteral(done)),
		}
	}
	d.sink.TaskMarked(task, n)
	return Result{Mutated: true}, nil
}

func (d *Dispatcher) delete(raw string) (Result, error) {
	n, err := parseTaskNumber(raw)
	if err != nil {
		return Result{}, err
	}
	removed, err := d.store.Delete(n - 1)
	if err != nil {
		return Result{}, d.indexError(err)
	}
	d.sink.TaskDeleted(removed, n, d.store.Len())
	return Result{Mutated: true}, nil
}

func (d *Dispatcher) indexError(err error) error {
	var ie *model.IndexError
	if errors.As(err, &ie) {
		return &CommandError{
			Code:    ErrCodeOutOfRange,
			Message: fmt.Sprintf("Task %d is out of range. You have %d task(s) in the list.", ie.Position(), ie.Size),
		}
	}
	return err
}

func invalidTask(err error) error {
	if errors.Is(err, model.ErrEmptyDescription) || errors.Is(err, model.ErrInvalidKind) {
		return &CommandError{Code: ErrCodeInvalidArgument, Message: "The description of a task cannot be empty."}
	}
	return err
}

func parseTaskNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &CommandError{Code: ErrCodeExpectedInteger, Message: fmt.Sprintf("Expected an integer task number but got %q.", raw)}
	}
	return n, nil
}

func usageError(cmd Type) error {
	spec, _ := Lookup(cmd)
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("I couldn't read that %s. Usage: %s", cmd, spec.Usage)}
}

// HelpMarkdown lists every command as a markdown table.
func HelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Commands\n\n| command | what it does |\n|---|---|\n")
	for _, s := range table {
		fmt.Fprintf(&b, "| `%s` | %s |\n", s.Usage, s.Summary)
	}
	return strings.TrimSpace(b.String())
}
