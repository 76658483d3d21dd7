package commands

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/wonky/internal/model"
	"github.com/sandeepkv93/wonky/internal/reply"
)

func newDispatcher(t *testing.T, todos ...string) (*Dispatcher, *model.Store, *reply.Sink) {
	t.Helper()
	store := model.NewStore()
	sink := reply.NewSink()
	for _, d := range todos {
		task, err := model.NewTask(model.KindTodo, d)
		if err != nil {
			t.Fatalf("new task: %v", err)
		}
		if _, _, err := store.Add(task); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return NewDispatcher(store, sink, nil), store, sink
}

func dispatchLine(t *testing.T, d *Dispatcher, line string) (Result, string) {
	t.Helper()
	cmd, arg := Resolve(line)
	res, err := d.Dispatch(cmd, arg)
	if err != nil {
		t.Fatalf("dispatch %q: %v", line, err)
	}
	return res, d.sink.Flush().Text
}

func TestMarkFormatsStatusLine(t *testing.T) {
	d, store, _ := newDispatcher(t, "read book")
	res, out := dispatchLine(t, d, "mark 1")
	if !res.Mutated || res.Rejected != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(out, "1. [T][X] read book") {
		t.Fatalf("unexpected reply: %q", out)
	}
	task, _ := store.Get(0)
	if !task.Done {
		t.Fatal("expected task done")
	}
}

func TestMarkTwiceReportsAlreadyMarked(t *testing.T) {
	d, store, _ := newDispatcher(t, "a", "b", "c")
	for i := 1; i <= store.Len(); i++ {
		line := "mark " + string(rune('0'+i))
		dispatchLine(t, d, line)
		res, out := dispatchLine(t, d, line)
		if res.Rejected != ErrCodeAlreadySet || !strings.Contains(out, "already marked") {
			t.Fatalf("%s twice: %+v %q", line, res, out)
		}
		task, _ := store.Get(i - 1)
		if !task.Done {
			t.Fatalf("task %d expected done", i)
		}
	}
}

func TestUnmarkUndoneReportsAlreadyMarked(t *testing.T) {
	d, _, _ := newDispatcher(t, "a")
	res, out := dispatchLine(t, d, "unmark 1")
	if res.Rejected != ErrCodeAlreadySet || !strings.Contains(out, "not done") {
		t.Fatalf("unexpected: %+v %q", res, out)
	}
}

func TestMarkOutOfRange(t *testing.T) {
	d, store, _ := newDispatcher(t, "a", "b")
	for _, arg := range []string{"0", "-1", "3", "100"} {
		for _, cmd := range []string{"mark", "unmark", "delete"} {
			res, out := dispatchLine(t, d, cmd+" "+arg)
			if res.Rejected != ErrCodeOutOfRange || res.Mutated {
				t.Fatalf("%s %s: unexpected result %+v", cmd, arg, res)
			}
			if !strings.Contains(out, "out of range") || !strings.Contains(out, "Task "+arg+" ") {
				t.Fatalf("%s %s: unexpected reply %q", cmd, arg, out)
			}
		}
	}
	if store.Len() != 2 {
		t.Fatalf("store changed: %d", store.Len())
	}
	for _, task := range store.All() {
		if task.Done {
			t.Fatal("store changed by out-of-range mark")
		}
	}
}

func TestMarkOnEmptyStore(t *testing.T) {
	d, store, _ := newDispatcher(t)
	_, out := dispatchLine(t, d, "mark 1")
	if !strings.Contains(out, "Task 1 is out of range") {
		t.Fatalf("unexpected reply: %q", out)
	}
	if store.Len() != 0 {
		t.Fatal("store changed")
	}
}

func TestMarkExpectsInteger(t *testing.T) {
	d, store, _ := newDispatcher(t, "a")
	for _, arg := range []string{"one", "1.5", "0x1", "99999999999999999999999"} {
		res, out := dispatchLine(t, d, "mark "+arg)
		if res.Rejected != ErrCodeExpectedInteger {
			t.Fatalf("mark %s: %+v", arg, res)
		}
		if !strings.Contains(out, "Expected an integer") || !strings.Contains(out, `"`+arg+`"`) {
			t.Fatalf("mark %s: unexpected reply %q", arg, out)
		}
	}
	task, _ := store.Get(0)
	if task.Done {
		t.Fatal("store changed")
	}
}

func TestWrongArity(t *testing.T) {
	d, store, _ := newDispatcher(t, "a")
	for _, line := range []string{"mark", "mark 1 2", "unmark", "list all", "bye now", "todo", "find"} {
		res, out := dispatchLine(t, d, line)
		if res.Rejected != ErrCodeWrongArity || res.Mutated || res.Exit {
			t.Fatalf("%q: unexpected result %+v", line, res)
		}
		if !strings.Contains(out, "Wrong number of arguments") {
			t.Fatalf("%q: unexpected reply %q", line, out)
		}
	}
	task, _ := store.Get(0)
	if task.Done || store.Len() != 1 {
		t.Fatal("store changed")
	}
}

func TestAddCommands(t *testing.T) {
	d, store, _ := newDispatcher(t)
	cases := []struct {
		line string
		want string
	}{
		{"todo read book", "1. [T][ ] read book"},
		{"deadline return book /by Sunday", "2. [D][ ] return book (by: Sunday)"},
		{"event project meeting /from Mon 2pm /to 4pm", "3. [E][ ] project meeting (from: Mon 2pm to: 4pm)"},
	}
	for _, tc := range cases {
		res, out := dispatchLine(t, d, tc.line)
		if !res.Mutated || !strings.Contains(out, tc.want) {
			t.Fatalf("%q: %+v %q", tc.line, res, out)
		}
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 tasks, got %d", store.Len())
	}
	task, _ := store.Get(1)
	if task.Literal() != "deadline" || task.By != "Sunday" {
		t.Fatalf("unexpected deadline task: %+v", task)
	}
}

func TestAddRejectsMalformedDeadlineAndEvent(t *testing.T) {
	d, store, _ := newDispatcher(t)
	for _, line := range []string{"deadline return book", "deadline /by Sunday", "event x /from a", "event x /to b", "event /from a /to b"} {
		res, out := dispatchLine(t, d, line)
		if res.Rejected != ErrCodeInvalidArgument || !strings.Contains(out, "Usage") {
			t.Fatalf("%q: %+v %q", line, res, out)
		}
	}
	if store.Len() != 0 {
		t.Fatal("store changed")
	}
}

func TestListFindDelete(t *testing.T) {
	d, store, _ := newDispatcher(t, "read book", "buy milk")
	_, out := dispatchLine(t, d, "list")
	if !strings.Contains(out, "1. [T][ ] read book\n2. [T][ ] buy milk") {
		t.Fatalf("unexpected list: %q", out)
	}
	_, out = dispatchLine(t, d, "find milk")
	if !strings.Contains(out, "2. [T][ ] buy milk") || strings.Contains(out, "read book") {
		t.Fatalf("unexpected find: %q", out)
	}
	res, out := dispatchLine(t, d, "delete 1")
	if !res.Mutated || !strings.Contains(out, "1 task(s)") {
		t.Fatalf("unexpected delete: %+v %q", res, out)
	}
	remaining, _ := store.Get(0)
	if store.Len() != 1 || remaining.Description != "buy milk" {
		t.Fatalf("unexpected store after delete: %+v", store.All())
	}
}

func TestHelpAndBye(t *testing.T) {
	d, _, sink := newDispatcher(t)
	if _, err := d.Dispatch(TypeHelp, ""); err != nil {
		t.Fatalf("help: %v", err)
	}
	help := sink.Flush()
	if !help.Markdown || !strings.Contains(help.Text, "mark <task number>") {
		t.Fatalf("unexpected help: %+v", help)
	}
	res, out := dispatchLine(t, d, "bye")
	if !res.Exit || !strings.Contains(out, "Bye") {
		t.Fatalf("unexpected bye: %+v %q", res, out)
	}
}

func TestDispatchNoneIsRejected(t *testing.T) {
	d, _, _ := newDispatcher(t)
	res, err := d.Dispatch(None, "")
	if err != nil || res.Rejected != ErrCodeUnknownCommand {
		t.Fatalf("unexpected: %+v %v", res, err)
	}
}
