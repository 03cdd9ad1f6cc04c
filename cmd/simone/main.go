package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/project-simone/simone/internal/config"
	"github.com/project-simone/simone/internal/util"
	"github.com/project-simone/simone/pkg/engine"
	"github.com/project-simone/simone/pkg/logger"
	"github.com/project-simone/simone/pkg/logger/console"
)

var errUsage = errors.New("usage")

func main() {
	util.LoadEnv()

	// Logs go to stderr so command output stays pipeable.
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		Level: util.GetEnvString("LOG_LEVEL", "warn"),
		JSON:  util.GetEnv("LOG_FORMAT") == "json",
	}))

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1], os.Args[2:], os.Stdout, func() (*engine.Engine, error) {
		return config.NewEngine(ctx)
	})
	if errors.Is(err, errUsage) {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, out io.Writer, open func() (*engine.Engine, error)) error {
	switch cmd {
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	case "serve":
		fmt.Fprintln(out, "The HTTP API runs as its own binary: go run ./cmd/server")
		return nil
	case "cache":
		return handleCache(ctx, args, out)
	}

	handlers := map[string]func(context.Context, *engine.Engine, []string, io.Writer) error{
		"stats":    handleStats,
		"concepts": handleConcepts,
		"path":     handlePath,
		"graph":    handleGraph,
		"insights": handleInsights,
		"ask":      handleAsk,
		"learn":    handleLearn,
		"export":   handleExport,
	}
	handler, ok := handlers[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		return errUsage
	}

	eng, err := open()
	if err != nil {
		return err
	}
	return handler(ctx, eng, args, out)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `simone - Explore the concept graph of analysed podcast episodes

Usage: simone <command> [options]

Commands:
  stats                          Corpus and graph statistics
  concepts                       Concept map summary
  concepts -concept <name>       Details for one concept
  concepts -output <file>        Write the result as JSON
  path <from> <to>               Shortest path between two concepts
  graph [-output <file>]         Graph as nodes and edges JSON
  insights [-topic <t>] [-episodes a,b] [-output <file>]
                                 Cross-episode insight report
  ask [-episode <id>] <question> Answer a question from the episodes
  learn [-target <c>] [-max n] <start>
                                 Episodes leading from one concept to another
  export [-format json|csv] [-output <dest>]
                                 Export insights to a file, directory or s3://bucket/key
  cache [-cleanup] [-clear]      Response cache statistics and maintenance
  serve                          How to start the HTTP API

Configuration is read from the environment and an optional .env file.`)
}
