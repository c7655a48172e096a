// Command outdiff compares a produced query-output directory against an
// expected one, file by file, and exits non-zero when they differ. It hashes
// whole files rather than diffing line ranges: the outputs it guards are
// small and a mismatch means a regression either way.
//
//	outdiff -got Resultados -want Resultados-esperados
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

func main() {
	var gotDir, wantDir string
	flag.StringVar(&gotDir, "got", "", "directory with produced outputs")
	flag.StringVar(&wantDir, "want", "", "directory with expected outputs")
	verbose := flag.Bool("v", false, "also log matching files")
	flag.Parse()

	if gotDir == "" || wantDir == "" {
		fatalf("usage: outdiff -got <dir> -want <dir>")
	}

	names, err := fileUnion(gotDir, wantDir)
	if err != nil {
		fatalf("%v", err)
	}

	var mu sync.Mutex
	mismatches := 0
	report := func(format string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		mismatches++
		fmt.Printf(format+"\n", a...)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, name := range names {
		name := name
		g.Go(func() error {
			gotHash, gotOK, err := hashFile(filepath.Join(gotDir, name))
			if err != nil {
				return err
			}
			wantHash, wantOK, err := hashFile(filepath.Join(wantDir, name))
			if err != nil {
				return err
			}
			switch {
			case !wantOK:
				report("%s: unexpected extra file", name)
			case !gotOK:
				report("%s: missing", name)
			case gotHash != wantHash:
				report("%s: content differs", name)
			default:
				if *verbose {
					log.Printf("%s: ok", name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatalf("%v", err)
	}

	if mismatches > 0 {
		fatalf("%d of %d files differ", mismatches, len(names))
	}
	fmt.Printf("%d files match\n", len(names))
}

// fileUnion returns the sorted union of regular file names directly under the
// two directories.
func fileUnion(a, b string) ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range []string{a, b} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				seen[e.Name()] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// hashFile returns the xxh3 hash of a file's contents. The bool is false when
// the file does not exist.
func hashFile(path string) (uint64, bool, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read %s: %w", path, err)
	}
	return xxh3.Hash(b), true, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
