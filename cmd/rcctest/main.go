// rcctest runs the rcc binary over a corpus of source files and compares
// the emitted assembly against golden .s files. Sources whose hash matches
// a previously passing run are skipped unless the golden file changed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
)

var (
	compilerPath = flag.String("compiler", "./rcc", "Path to the compiler binary to test.")
	compilerArgs = flag.String("compiler-args", "-b amd64", "Extra arguments for the compiler (space-separated). The checked-in golden files are amd64.")
	testFiles    = flag.String("test-files", "testdata/*.c", "Glob pattern for source files to test.")
	update       = flag.Bool("update", false, "Regenerate the golden .s files instead of comparing.")
	cacheFile    = flag.String("cache", ".rcctest_cache.json", "Cache file for passing run hashes.")
	timeout      = flag.Duration("timeout", 10*time.Second, "Timeout for each compiler invocation.")
	jobs         = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose      = flag.Bool("v", false, "Enable verbose logging.")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cNone   = "\x1b[0m"
)

type result struct {
	file   string
	status string // PASS, FAIL, SKIP, ERROR
	detail string
}

// cacheEntry records the hashes of a passing source/golden pair.
type cacheEntry struct {
	Source string `json:"source"`
	Golden string `json:"golden"`
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	files, err := filepath.Glob(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s invalid glob pattern: %v", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("no test files found")
		return
	}
	sort.Strings(files)

	cache := loadCache(*cacheFile)

	tempDir, err := os.MkdirTemp("", "rcctest-*")
	if err != nil {
		log.Fatalf("%s[ERROR]%s could not create temp directory: %v", cRed, cNone, err)
	}
	defer os.RemoveAll(tempDir)

	results := make([]result, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, *jobs)
	var mu sync.Mutex

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := runOne(file, tempDir, cache, &mu)
			results[i] = res
		}(i, file)
	}
	wg.Wait()

	failed := 0
	for _, res := range results {
		switch res.status {
		case "PASS":
			fmt.Printf("%s[PASS]%s %s\n", cGreen, cNone, res.file)
		case "SKIP":
			if *verbose {
				fmt.Printf("[SKIP] %s (%s)\n", res.file, res.detail)
			}
		case "FAIL":
			failed++
			fmt.Printf("%s[FAIL]%s %s\n%s\n", cRed, cNone, res.file, res.detail)
		case "ERROR":
			failed++
			fmt.Printf("%s[ERROR]%s %s: %s\n", cRed, cNone, res.file, res.detail)
		}
	}

	saveCache(*cacheFile, cache)

	fmt.Printf("\n%d tested, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runOne(file, tempDir string, cache map[string]cacheEntry, mu *sync.Mutex) result {
	goldenPath := strings.TrimSuffix(file, ".c") + ".s"

	srcHash, err := hashFile(file)
	if err != nil {
		return result{file, "ERROR", fmt.Sprintf("could not hash source: %v", err)}
	}

	if !*update {
		goldenHash, err := hashFile(goldenPath)
		if err == nil {
			mu.Lock()
			entry, hit := cache[file]
			mu.Unlock()
			if hit && entry.Source == srcHash && entry.Golden == goldenHash {
				return result{file, "SKIP", "unchanged since last passing run"}
			}
		}
	}

	outPath := filepath.Join(tempDir, strings.ReplaceAll(file, string(filepath.Separator), "_")+".s")
	produced, detail, err := compile(file, outPath)
	if err != nil {
		return result{file, "ERROR", detail}
	}

	if *update {
		if err := os.WriteFile(goldenPath, produced, 0644); err != nil {
			return result{file, "ERROR", fmt.Sprintf("could not write golden file: %v", err)}
		}
		recordPass(cache, mu, file, srcHash, goldenPath)
		return result{file, "PASS", "golden updated"}
	}

	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return result{file, "ERROR", fmt.Sprintf("missing golden file %s (run with -update)", goldenPath)}
	}

	if diff := cmp.Diff(string(golden), string(produced)); diff != "" {
		return result{file, "FAIL", "assembly mismatch (-golden +produced):\n" + diff}
	}

	recordPass(cache, mu, file, srcHash, goldenPath)
	return result{file, "PASS", ""}
}

func compile(file, outPath string) (produced []byte, detail string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	args := strings.Fields(*compilerArgs)
	args = append(args, "-o", outPath, file)
	cmd := exec.CommandContext(ctx, *compilerPath, args...)
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, "compiler timed out", ctx.Err()
	}
	if err != nil {
		return nil, fmt.Sprintf("compiler failed: %v\n%s", err, output), err
	}

	produced, err = os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Sprintf("compiler produced no output: %v", err), err
	}
	return produced, "", nil
}

func recordPass(cache map[string]cacheEntry, mu *sync.Mutex, file, srcHash, goldenPath string) {
	goldenHash, err := hashFile(goldenPath)
	if err != nil {
		return
	}
	mu.Lock()
	cache[file] = cacheEntry{Source: srcHash, Golden: goldenHash}
	mu.Unlock()
}

// hashFile computes the xxhash of a file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum64()), nil
}

func loadCache(path string) map[string]cacheEntry {
	cache := make(map[string]cacheEntry)
	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return make(map[string]cacheEntry)
	}
	return cache
}

func saveCache(path string, cache map[string]cacheEntry) {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}
