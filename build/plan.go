package build

import (
	"unicode/utf8"

	"github.com/mxvdb/vaguedict/internal/errutil"
	"github.com/mxvdb/vaguedict/intrie"
	"github.com/mxvdb/vaguedict/trie"
)

// rangeTolerance is the largest gap (in codepoints) between one range
// candidate's character and the next that still joins them into a single
// dense-range node.
const rangeTolerance = 3

// group is one entry of a per-layer emission plan: either a single node
// (naive or substring) or a run of single-character entries packed into one
// range node.
type group struct {
	kind  trie.Tag
	items []*intrie.Node
}

// buildPlan reclassifies a layer's children (already ordered by first
// character, per intrie.Node.Children/Drain) into an emission plan: runs of
// adjacent single-character entries are folded into range groups where the
// gap tolerance allows, multi-character entries stand alone as substring
// groups, and isolated single characters become naive groups.
func buildPlan(entries []*intrie.Node) []group {
	var plan []group
	i := 0
	for i < len(entries) {
		e := entries[i]
		if runeCount(e.Substring()) > 1 {
			plan = append(plan, group{kind: trie.TagSubstring, items: entries[i : i+1]})
			i++
			continue
		}

		// Single-character entry: grow a range candidate.
		j := i + 1
		prev := firstRune(e.Substring())
		for j < len(entries) {
			next := entries[j]
			if runeCount(next.Substring()) != 1 {
				break
			}
			c := firstRune(next.Substring())
			errutil.BugOn(c <= prev, "sibling characters not strictly ascending: %q then %q", prev, c)
			if c-prev > rangeTolerance {
				break
			}
			prev = c
			j++
		}

		run := entries[i:j]
		if len(run) == 1 {
			plan = append(plan, group{kind: trie.TagNaive, items: run})
		} else {
			plan = append(plan, group{kind: trie.TagRange, items: run})
		}
		i = j
	}
	return plan
}

func runeCount(s string) int { return utf8.RuneCountInString(s) }

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
