package storage

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlSchema = 1

type yamlDocument struct {
	Schema int    `yaml:"schema"`
	Tasks  []Task `yaml:"tasks"`
}

// YAMLRepository keeps every task in one yaml document, rewritten atomically.
type YAMLRepository struct {
	path string
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

func (r *YAMLRepository) ListTasks(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Task{}, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return []Task{}, nil
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if doc.Schema != yamlSchema {
		return nil, fmt.Errorf("decode %s: unsupported schema %d", r.path, doc.Schema)
	}
	sort.SliceStable(doc.Tasks, func(i, j int) bool { return doc.Tasks[i].Position < doc.Tasks[j].Position })
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	return doc.Tasks, nil
}

func (r *YAMLRepository) ReplaceTasks(ctx context.Context, tasks []Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := yaml.Marshal(yamlDocument{Schema: yamlSchema, Tasks: tasks})
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *YAMLRepository) Close() error {
	return nil
}
