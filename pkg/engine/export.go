package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/project-simone/simone/internal/storage"
	"github.com/project-simone/simone/pkg/episode"
	"github.com/project-simone/simone/pkg/graph"
	"github.com/project-simone/simone/pkg/insight"
	"github.com/project-simone/simone/pkg/logger"
)

const topExportCount = 20

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ErrUnsupportedFormat is returned for an export format other than json or csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ObjectWriter uploads exports to object storage.
type ObjectWriter = storage.ObjectWriter

// Export is the full analysis bundle written by ExportInsights.
type Export struct {
	GeneratedDate   time.Time                `json:"generated_date"`
	Statistics      episode.Statistics       `json:"statistics"`
	TopConcepts     []episode.Frequency      `json:"top_concepts"`
	TopPhilosophers []episode.Frequency      `json:"top_philosophers"`
	ConceptMap      *graph.ConceptMapSummary `json:"concept_map"`
	Insights        *insight.Report          `json:"cross_episode_insights"`
}

// BuildExport assembles the export bundle from the current snapshot.
func (e *Engine) BuildExport(ctx context.Context) (*Export, error) {
	s := e.snapshot()

	report, err := e.generator.Generate(ctx, s.corpus.All(true), "")
	if err != nil {
		return nil, err
	}

	return &Export{
		GeneratedDate:   e.now().UTC(),
		Statistics:      s.corpus.Statistics(),
		TopConcepts:     head(s.corpus.ConceptFrequencies(), topExportCount),
		TopPhilosophers: head(s.corpus.PhilosopherFrequencies(), topExportCount),
		ConceptMap:      s.graph.MapAllConcepts(),
		Insights:        report,
	}, nil
}

// ExportInsights writes an export in format to dest and returns where it
// went. dest may be a file path, a directory (existing, or ending in a
// slash), an s3://bucket/key URL or empty for the configured export
// directory. JSON exports hold the full bundle, CSV exports one row per
// episode.
func (e *Engine) ExportInsights(ctx context.Context, format, dest string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}

	var data []byte
	switch format {
	case FormatJSON:
		bundle, err := e.BuildExport(ctx)
		if err != nil {
			return "", err
		}
		data, err = json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode export: %w", err)
		}
	case FormatCSV:
		var buf bytes.Buffer
		if err := e.Corpus().WriteCSV(&buf); err != nil {
			return "", fmt.Errorf("encode export: %w", err)
		}
		data = buf.Bytes()
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	name, err := e.exportName(format)
	if err != nil {
		return "", err
	}

	if rest, ok := strings.CutPrefix(dest, "s3://"); ok {
		if !strings.Contains(rest, "/") || strings.HasSuffix(rest, "/") {
			dest = strings.TrimSuffix(dest, "/") + "/" + name
		}
		bucket, key, ok := storage.ParseS3URL(dest)
		if !ok {
			return "", fmt.Errorf("invalid export destination %q", dest)
		}
		return e.upload(ctx, bucket, key, data)
	}

	target := dest
	switch {
	case target == "":
		target = filepath.Join(e.exportDir, name)
	case strings.HasSuffix(target, "/") || strings.HasSuffix(target, string(os.PathSeparator)) || isDir(target):
		target = filepath.Join(target, name)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	logger.Info("[Engine] Insights exported", "path", target, "format", format, "bytes", len(data))
	return target, nil
}

func (e *Engine) upload(ctx context.Context, bucket, key string, data []byte) (string, error) {
	e.objectsMu.Lock()
	if e.objects == nil {
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			e.objectsMu.Unlock()
			return "", err
		}
		e.objects = client
	}
	objects := e.objects
	e.objectsMu.Unlock()

	if err := storage.PutFile(ctx, objects, bucket, key, data); err != nil {
		return "", err
	}
	location := "s3://" + bucket + "/" + key
	logger.Info("[Engine] Insights uploaded", "location", location, "bytes", len(data))
	return location, nil
}

func (e *Engine) exportName(format string) (string, error) {
	id, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("simone_insights_%s_%s.%s", e.now().UTC().Format("20060102_150405"), id, format), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
