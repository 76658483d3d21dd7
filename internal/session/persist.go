package session

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/wonky/internal/model"
	"github.com/sandeepkv93/wonky/internal/storage"
)

// Load rebuilds the store by replaying every stored row as the command that
// created it, in loading mode, then queues the welcome. Replay chatter is
// discarded.
func (s *Session) Load(ctx context.Context) error {
	if s.repo == nil {
		s.Welcome()
		return nil
	}
	rows, err := s.repo.ListTasks(ctx)
	if err != nil {
		return s.storageErr("load", err)
	}

	s.loading = true
	defer func() { s.loading = false }()
	skipped := 0
	for _, row := range rows {
		before := s.store.Len()
		if err := s.ProcessLine(ctx, replayLine(row)); err != nil {
			return err
		}
		if s.store.Len() == before {
			skipped++
			s.logger.Warn("skipped stored task", "id", row.ID, "command", row.Command)
			continue
		}
		pos := s.store.Len()
		if err := s.store.Restore(pos-1, row.ID, row.CreatedAt); err != nil {
			return err
		}
		if row.Done {
			if err := s.ProcessLine(ctx, fmt.Sprintf("mark %d", pos)); err != nil {
				return err
			}
		}
	}
	if s.sink.Pending() {
		s.logger.Debug("discarded replay output", "text", s.sink.Flush().Text)
	}
	s.logger.Info("tasks loaded", "count", s.store.Len(), "skipped", skipped)
	s.Welcome()
	return nil
}

func (s *Session) save(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	tasks := s.store.All()
	rows := make([]storage.Task, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, storage.Task{
			ID:          t.ID,
			Position:    i + 1,
			Kind:        t.Kind.Letter(),
			Command:     t.Literal(),
			Description: t.Description,
			Done:        t.Done,
			By:          t.By,
			From:        t.From,
			To:          t.To,
			CreatedAt:   t.CreatedAt,
		})
	}
	if err := s.repo.ReplaceTasks(ctx, rows); err != nil {
		return s.storageErr("save", err)
	}
	s.logger.Debug("tasks saved", "count", len(rows))
	return nil
}

// replayLine rebuilds the command line that creates row. Rows with an
// unknown command yield a line the resolver rejects, which loading mode
// ignores silently.
func replayLine(row storage.Task) string {
	command := row.Command
	if command == "" {
		if kind, err := model.KindFromLetter(row.Kind); err == nil {
			command = string(kind)
		}
	}
	switch model.Kind(command) {
	case model.KindDeadline:
		return fmt.Sprintf("%s %s /by %s", command, row.Description, row.By)
	case model.KindEvent:
		return fmt.Sprintf("%s %s /from %s /to %s", command, row.Description, row.From, row.To)
	default:
		return fmt.Sprintf("%s %s", command, row.Description)
	}
}
