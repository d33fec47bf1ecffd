package parser

import (
	"sort"
	"strings"
)

// Argument prefixes.
const (
	PrefixTask       = "d/"
	PrefixCondition  = "c/"
	PrefixMedication = "m/"
	PrefixRemark     = "r/"
	PrefixTag        = "t/"
	PrefixName       = "n/"
	PrefixPhone      = "p/"
	PrefixEmail      = "e/"
	PrefixAddress    = "a/"
)

// arguments is the tokenized form of a command's argument string: the text
// before the first prefix plus every value given for each prefix, in order.
type arguments struct {
	preamble string
	values   map[string][]string
}

// value returns the last value given for prefix.
func (a arguments) value(prefix string) (string, bool) {
	vs := a.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (a arguments) all(prefix string) []string {
	return a.values[prefix]
}

// tokenize splits args on the given prefixes. A prefix is recognized only at
// the start of a whitespace-separated word.
func tokenize(args string, prefixes ...string) arguments {
	type mark struct {
		prefix string
		at     int
	}
	padded := " " + args
	var marks []mark
	for _, p := range prefixes {
		from := 0
		for {
			i := strings.Index(padded[from:], " "+p)
			if i < 0 {
				break
			}
			at := from + i + 1
			marks = append(marks, mark{prefix: p, at: at})
			from = at
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].at < marks[j].at })

	out := arguments{values: make(map[string][]string)}
	end := len(padded)
	if len(marks) > 0 {
		end = marks[0].at
	}
	out.preamble = strings.TrimSpace(padded[:end])
	for i, m := range marks {
		stop := len(padded)
		if i+1 < len(marks) {
			stop = marks[i+1].at
		}
		v := strings.TrimSpace(padded[m.at+len(m.prefix) : stop])
		out.values[m.prefix] = append(out.values[m.prefix], v)
	}
	return out
}
