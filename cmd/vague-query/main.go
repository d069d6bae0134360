// Command vague-query answers approximate-match queries against a compiled
// vaguedict dictionary, one per line of standard input.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mxvdb/vaguedict/dictfile"
	"github.com/mxvdb/vaguedict/search"
)

type match struct {
	Word     string `json:"word"`
	Freq     uint32 `json:"freq"`
	Distance int    `json:"distance"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <compiled-dict>\n", os.Args[0])
		os.Exit(1)
	}

	d, err := dictfile.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer d.Close()

	scanner := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		action, threshold, word, err := parseQuery(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "query error: %v\n", err)
			continue
		}
		if action != "approx" {
			fmt.Fprintf(os.Stderr, "query error: unknown action %q\n", action)
			continue
		}

		results := search.Approximate(d.Trie, word, threshold)
		sortResults(results)

		matches := make([]match, len(results))
		for i, r := range results {
			matches[i] = match{Word: r.Word, Freq: r.Frequency, Distance: r.Distance}
		}

		encoded, err := json.Marshal(matches)
		if err != nil {
			fmt.Fprintf(os.Stderr, "query error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, string(encoded))
		out.Flush()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "stdin error: %v\n", err)
		os.Exit(1)
	}
}

func parseQuery(line string) (action string, threshold int, word string, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", 0, "", fmt.Errorf("expected `approx <N> <word>`, got %q", line)
	}
	action = fields[0]
	threshold, err = strconv.Atoi(fields[1])
	if err != nil || threshold < 0 {
		return "", 0, "", fmt.Errorf("distance must be a non-negative integer, got %q", fields[1])
	}
	word = fields[2]
	return action, threshold, word, nil
}

func sortResults(results []search.Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Word < b.Word
	})
}
