// Package batch runs a command file against the query engine, writing one
// output file per input line. The catalog is read-only once built, so
// commands execute concurrently; each output file is independent and named by
// the command's 1-based position, which keeps the results deterministic
// regardless of completion order.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"travelcat/internal/command"
	"travelcat/internal/metrics"
	"travelcat/internal/query"
)

// Runner executes command files against an engine.
type Runner struct {
	Engine    *query.Engine
	OutputDir string
}

// Run reads the command file and writes command<N>_output.txt for every line,
// N starting at 1 in file order. A line that fails the command grammar still
// produces its output file, empty. The first write or read failure cancels
// the remaining work.
func (r *Runner) Run(ctx context.Context, commandsPath string) error {
	f, err := os.Open(commandsPath)
	if err != nil {
		return fmt.Errorf("open commands: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		i, line := i, line
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return r.runOne(i+1, line)
		})
	}
	return g.Wait()
}

func (r *Runner) runOne(n int, line string) error {
	out := ""
	cmd, ok := command.Parse(line)
	if ok {
		start := time.Now()
		out = r.Engine.Execute(cmd.Query, cmd.Labeled, cmd.Args)
		metrics.RecordCommand(strconv.Itoa(cmd.Query), nil, time.Since(start))
	}
	path := filepath.Join(r.OutputDir, fmt.Sprintf("command%d_output.txt", n))
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write command %d output: %w", n, err)
	}
	return nil
}
