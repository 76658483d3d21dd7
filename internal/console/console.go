// Package console drives a session from a line-oriented reader.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/wonky/internal/session"
)

// Run prints the queued welcome, then processes in line by line until the
// session terminates, the input ends or ctx is cancelled. After a farewell
// it waits the session's exit delay before returning. Lines may be of any
// length.
func Run(ctx context.Context, s *session.Session, in io.Reader, out io.Writer) error {
	if err := emit(out, s); err != nil {
		return err
	}
	reader := bufio.NewReader(in)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if readErr != nil && line == "" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.ProcessLine(ctx, strings.TrimRight(line, "\r\n")); err != nil {
			return err
		}
		if err := emit(out, s); err != nil {
			return err
		}
		if !s.Active() {
			return linger(ctx, s.ExitDelay())
		}
		if readErr != nil {
			return nil
		}
	}
}

func emit(out io.Writer, s *session.Session) error {
	r := s.Flush()
	if r.Empty() {
		return nil
	}
	_, err := fmt.Fprintln(out, r.Text)
	return err
}

func linger(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return nil
	}
}
