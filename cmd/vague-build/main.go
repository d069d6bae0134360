// Command vague-build compiles a `<word> <frequency>` text file into a
// vaguedict binary dictionary.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/mxvdb/vaguedict/build"
	"github.com/mxvdb/vaguedict/dictfile"
	"github.com/mxvdb/vaguedict/intrie"
)

func main() {
	if len(os.Args) != 3 {
		usage()
		os.Exit(1)
	}
	wordsPath, outPath := os.Args[1], os.Args[2]

	t, count, err := loadWords(wordsPath)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("loaded %s words from %s\n", humanize.Comma(int64(count)), wordsPath)

	compiled := build.Compile(t)
	fmt.Printf("compiled trie: %s nodes, %s bytes of characters, %s range elements\n",
		humanize.Comma(int64(len(compiled.Nodes))),
		humanize.Comma(int64(len(compiled.Chars))),
		humanize.Comma(int64(len(compiled.Ranges))))

	if err := dictfile.Write(outPath, compiled); err != nil {
		fail("%v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		fail("stat %s: %v", outPath, err)
	}
	fmt.Printf("wrote %s (%s)\n", outPath, humanize.Bytes(uint64(info.Size())))
}

// loadWords reads `<word> <frequency>` lines from path into a fresh
// intermediate trie, reporting progress as it goes.
func loadWords(path string) (*intrie.Trie, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "ingesting")
	t := intrie.New()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	count := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		bar.Add(len(line) + 1)

		if strings.TrimSpace(line) == "" {
			continue
		}
		word, freq, err := parseLine(line)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := t.Insert(word, freq); err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	bar.Close()

	return t, count, nil
}

func parseLine(line string) (string, uint32, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected `<word> <frequency>`, got %q", line)
	}
	freq, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil || freq == 0 {
		return "", 0, fmt.Errorf("frequency must be a positive integer, got %q", fields[1])
	}
	return fields[0], uint32(freq), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <words-file> <output-dict>\n", os.Args[0])
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
