package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/project-simone/simone/pkg/engine"
	"github.com/project-simone/simone/pkg/graph"
	lio "github.com/project-simone/simone/pkg/loader/io"
)

func writeEpisode(t *testing.T, dir, id, title string, concepts ...string) {
	t.Helper()
	entries := make([]map[string]string, 0, len(concepts))
	for _, c := range concepts {
		entries = append(entries, map[string]string{"concept": c})
	}
	data, _ := json.Marshal(map[string]any{
		"episode_id": id,
		"metadata":   map[string]any{"title": title, "processed_date": "2024-01-01T00:00:00"},
		"content_analysis": map[string]any{
			"primary_topic": "Ethics",
			"summary":       map[string]string{"brief": "brief of " + title},
		},
		"philosophical_content": map[string]any{"concepts_explored": entries},
	})
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testOpener(t *testing.T) func() (*engine.Engine, error) {
	t.Helper()
	dir := t.TempDir()
	writeEpisode(t, dir, "E1", "Virtue and Courage", "Virtue", "Courage")
	writeEpisode(t, dir, "E2", "Virtue as Habit", "Virtue", "Habit")
	writeEpisode(t, dir, "E3", "Habit and Character", "Habit", "Character")
	exportDir := t.TempDir()

	return func() (*engine.Engine, error) {
		return engine.New(context.Background(), engine.Params{
			Loader:    lio.NewDirLoader(dir),
			ExportDir: exportDir,
		})
	}
}

func runCmd(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), cmd, args, &out, testOpener(t))
	return out.String(), err
}

func TestRun_Output(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want []string
	}{
		{"stats", "stats", nil, []string{"valid: 3", "concepts: 4", "relationships: 3"}},
		{"concept map", "concepts", nil, []string{"4 concepts, 3 relationships", "Virtue"}},
		{"single concept", "concepts", []string{"-concept", "habit"}, []string{"Habit (2 occurrences", "[E2] Virtue as Habit", "Character (1)"}},
		{"path", "path", []string{"Courage", "Character"}, []string{"Courage -> Virtue -> Habit -> Character (3 steps)"}},
		{"ask", "ask", []string{"what", "is", "virtue"}, []string{"[E1] Virtue and Courage"}},
		{"learn", "learn", []string{"-target", "Character", "Virtue"}, []string{"Learning path from Virtue to Character", "[E2]"}},
		{"export", "export", []string{"-format", "csv"}, []string{"Exported insights to", ".csv"}},
		{"serve", "serve", nil, []string{"cmd/server"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.cmd, tt.args...)
			if err != nil {
				t.Fatalf("run(%s) error = %v", tt.cmd, err)
			}
			flat := strings.Join(strings.Fields(out), " ")
			for _, w := range tt.want {
				if !strings.Contains(flat, strings.Join(strings.Fields(w), " ")) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRun_JSONOutputs(t *testing.T) {
	dir := t.TempDir()

	graphFile := filepath.Join(dir, "graph.json")
	if _, err := runCmd(t, "graph", "-output", graphFile); err != nil {
		t.Fatalf("graph error = %v", err)
	}
	var vis graph.VisualizationData
	data, err := os.ReadFile(graphFile)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &vis); err != nil {
		t.Fatal(err)
	}
	if len(vis.Nodes) != 4 || len(vis.Edges) != 3 {
		t.Fatalf("graph = %d nodes, %d edges, want 4 and 3", len(vis.Nodes), len(vis.Edges))
	}

	out, err := runCmd(t, "insights", "-topic", "Virtue", "-episodes", "E1, E2")
	if err != nil {
		t.Fatalf("insights error = %v", err)
	}
	var report struct {
		Topic        string `json:"topic"`
		EpisodeCount int    `json:"episode_count"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("insights output is not JSON: %v", err)
	}
	if report.Topic != "Virtue" || report.EpisodeCount != 2 {
		t.Fatalf("report = %+v, want topic Virtue over 2 episodes", report)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		args    []string
		wantErr error
	}{
		{"unknown command", "frobnicate", nil, errUsage},
		{"path needs two concepts", "path", []string{"Virtue"}, errUsage},
		{"ask needs a question", "ask", nil, errUsage},
		{"unknown concept", "concepts", []string{"-concept", "Nothing"}, graph.ErrConceptNotFound},
		{"unknown episode", "ask", []string{"-episode", "NOPE", "why"}, engine.ErrEpisodeNotFound},
		{"bad export format", "export", []string{"-format", "xml"}, engine.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.cmd, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_ServeDoesNotLoad(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "serve", nil, &out, func() (*engine.Engine, error) {
		t.Fatal("serve must not load the corpus")
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRun_Cache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CACHE_BACKEND", "file")
	t.Setenv("CACHE_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "abc.json"), []byte(`"answer"`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "cache")
	if err != nil {
		t.Fatalf("cache error = %v", err)
	}
	if !strings.Contains(out, "Entries:    1") {
		t.Fatalf("cache stats = %q", out)
	}

	if _, err := runCmd(t, "cache", "-clear"); err != nil {
		t.Fatalf("cache -clear error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("%d files left after clear", len(entries))
	}

	t.Setenv("CACHE_BACKEND", "none")
	out, err = runCmd(t, "cache")
	if err != nil || !strings.Contains(out, "disabled") {
		t.Fatalf("cache with none = %q, %v", out, err)
	}
}
