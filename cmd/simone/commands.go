package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/project-simone/simone/internal/config"
	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/cache"
	"github.com/project-simone/simone/pkg/engine"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// writeJSON writes v indented to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func handleStats(_ context.Context, eng *engine.Engine, _ []string, out io.Writer) error {
	stats := eng.Corpus().Statistics()
	g := eng.Graph()

	fmt.Fprintln(out, "Episodes")
	fmt.Fprintf(out, "  total:                 %d\n", stats.TotalEpisodes)
	fmt.Fprintf(out, "  valid:                 %d\n", stats.ValidEpisodes)
	fmt.Fprintf(out, "  failed:                %d\n", stats.FailedEpisodes)
	fmt.Fprintf(out, "  concepts per episode:  %.2f\n", stats.AvgConceptsPerEpisode)
	fmt.Fprintf(out, "  avg complexity:        %.2f\n", stats.AvgComplexity)
	fmt.Fprintln(out, "Graph")
	fmt.Fprintf(out, "  concepts:              %d\n", g.NodeCount())
	fmt.Fprintf(out, "  relationships:         %d\n", g.EdgeCount())
	fmt.Fprintf(out, "  density:               %.4f\n", g.Density())
	fmt.Fprintf(out, "  avg clustering:        %.4f\n", g.AverageClustering())
	fmt.Fprintf(out, "  components:            %d\n", len(g.ConnectedComponents()))
	return nil
}

func handleConcepts(_ context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("concepts")
	concept := fs.String("concept", "", "show a single concept")
	output := fs.String("output", "", "write JSON to file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *concept != "" {
		detail, err := eng.Concept(*concept)
		if err != nil {
			return err
		}
		if *output != "" {
			return writeJSON(out, *output, detail)
		}

		fmt.Fprintf(out, "%s (%d occurrences, centrality %.3f, clustering %.3f)\n",
			detail.Concept, detail.Occurrences, detail.CentralityScore, detail.ClusteringCoefficient)
		fmt.Fprintln(out, "Episodes:")
		for _, m := range detail.Episodes {
			fmt.Fprintf(out, "  [%s] %s\n", m.EpisodeID, m.Title)
		}
		fmt.Fprintln(out, "Related:")
		for _, r := range detail.RelatedConcepts {
			fmt.Fprintf(out, "  %s (%d)\n", r.Concept, r.Strength)
		}
		return nil
	}

	summary := eng.ConceptMap()
	if *output != "" {
		return writeJSON(out, *output, summary)
	}

	fmt.Fprintf(out, "%d concepts, %d relationships\n", summary.TotalConcepts, summary.TotalRelationships)
	fmt.Fprintln(out, "Top concepts:")
	for _, c := range summary.TopConceptsByFrequency {
		fmt.Fprintf(out, "  %-30s %d\n", c.Concept, c.Count)
	}
	if len(summary.ConceptClusters) > 0 {
		fmt.Fprintln(out, "Clusters:")
		for _, c := range summary.ConceptClusters {
			fmt.Fprintf(out, "  %d concepts around %s\n", c.Size, c.CentralConcept)
		}
	}
	return nil
}

func handlePath(_ context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errUsage
	}

	path, err := eng.Graph().FindConceptPath(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%d steps)\n", strings.Join(path.Path, " -> "), path.PathLength)
	for _, step := range path.PathDetails {
		fmt.Fprintf(out, "  %s -> %s: strength %d, episodes %s\n",
			step.From, step.To, step.Strength, strings.Join(step.SharedEpisodes, ", "))
	}
	return nil
}

func handleGraph(_ context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("graph")
	output := fs.String("output", "", "write JSON to file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return writeJSON(out, *output, eng.Graph().ExportForVisualization())
}

func handleInsights(ctx context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("insights")
	topic := fs.String("topic", "", "focus topic")
	episodes := fs.String("episodes", "", "comma separated episode ids")
	output := fs.String("output", "", "write JSON to file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	report, err := eng.Insights(ctx, *topic, util.SplitList(*episodes))
	if err != nil {
		return err
	}
	return writeJSON(out, *output, report)
}

func handleAsk(ctx context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("ask")
	episodeID := fs.String("episode", "", "ask about a single episode")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	question := util.CleanText(strings.Join(fs.Args(), " "))
	if question == "" {
		return errUsage
	}

	answer, err := eng.Ask(ctx, question, *episodeID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for _, s := range answer.Sources {
			fmt.Fprintf(out, "  [%s] %s\n", s.EpisodeID, s.Title)
		}
	}
	return nil
}

func handleLearn(ctx context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("learn")
	target := fs.String("target", "", "concept to work towards")
	maxEpisodes := fs.Int("max", 5, "maximum number of episodes")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	path, err := eng.LearningPath(ctx, fs.Arg(0), *target, *maxEpisodes)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Learning path from %s", path.Start)
	if path.Target != "" {
		fmt.Fprintf(out, " to %s", path.Target)
	}
	fmt.Fprintln(out)
	for i, step := range path.Steps {
		fmt.Fprintf(out, "%d. [%s] %s\n   %s\n", i+1, step.EpisodeID, step.Title, step.Reason)
	}
	return nil
}

func handleExport(ctx context.Context, eng *engine.Engine, args []string, out io.Writer) error {
	fs := newFlags("export")
	format := fs.String("format", engine.FormatJSON, "json or csv")
	output := fs.String("output", "", "file, directory or s3://bucket/key")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	location, err := eng.ExportInsights(ctx, *format, *output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported insights to %s\n", location)
	return nil
}

func handleCache(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlags("cache")
	cleanup := fs.Bool("cleanup", false, "remove expired entries")
	clearAll := fs.Bool("clear", false, "remove every entry")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	store, err := config.NewCache(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(out, "Caching is disabled (CACHE_BACKEND=none)")
		return nil
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	if *clearAll {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Cleared cache")
		return nil
	}

	fc, ok := store.(*cache.FileCache)
	if !ok {
		fmt.Fprintln(out, "Statistics are only available for the file cache")
		return nil
	}

	if *cleanup {
		n, err := fc.CleanupExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d expired entries\n", n)
	}

	stats, err := fc.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Directory:  %s\n", stats.Directory)
	fmt.Fprintf(out, "Entries:    %d\n", stats.TotalFiles)
	fmt.Fprintf(out, "Expired:    %d\n", stats.ExpiredFiles)
	fmt.Fprintf(out, "Size:       %.2f MB\n", float64(stats.TotalBytes)/(1024*1024))
	return nil
}
