package budget

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minTruncateTokens is the smallest remainder worth truncating into. Below
// this the surviving fragment is too mangled to help the model.
const minTruncateTokens = 24

// Assembly is the outcome of packing elements into one request's partition.
type Assembly struct {
	Packed    map[Category][]Element
	Ledger    *Ledger
	Truncated int
	Dropped   int
}

// Content returns the packed contents for a category in packing order.
func (a Assembly) Content(category Category) []string {
	elements := a.Packed[category]
	if len(elements) == 0 {
		return nil
	}
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, el.Content)
	}
	return out
}

// Assembler fits candidate elements into a request's token partition,
// highest effective priority first.
type Assembler struct {
	counter Counter
}

func NewAssembler(counter Counter) *Assembler {
	return &Assembler{counter: counter}
}

// Assemble packs elements into a fresh ledger for cfg. Elements that do not
// fit their category's remainder are dropped; high priority elements are
// truncated to the remainder and kept.
func (a *Assembler) Assemble(cfg Config, elements []Element) Assembly {
	assembly := Assembly{
		Packed: make(map[Category][]Element),
		Ledger: NewLedger(cfg),
	}

	ordered := make([]Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EffectivePriority() > ordered[j].EffectivePriority()
	})

	for _, el := range ordered {
		if el.Content == "" {
			continue
		}
		if el.TokenCount <= 0 {
			el.TokenCount = a.counter.Count(el.Content)
		}

		if assembly.Ledger.Allocate(el.Category, el.TokenCount) {
			assembly.Packed[el.Category] = append(assembly.Packed[el.Category], el)
			continue
		}

		if !el.HighPriority() {
			assembly.Dropped++
			continue
		}

		remaining := assembly.Ledger.Remaining(el.Category)
		if remaining < minTruncateTokens {
			assembly.Dropped++
			continue
		}

		truncated := a.shrink(el, remaining)
		if truncated.TokenCount > 0 && assembly.Ledger.Allocate(truncated.Category, truncated.TokenCount) {
			assembly.Packed[truncated.Category] = append(assembly.Packed[truncated.Category], truncated)
			assembly.Truncated++
		} else {
			assembly.Dropped++
		}
	}

	return assembly
}

// shrink cuts the element down to at most budget tokens, recording the loss
// as CompressionLevel.
func (a *Assembler) shrink(el Element, budget int) Element {
	original := el.TokenCount
	content := el.Content
	tokens := el.TokenCount

	for tokens > budget && content != "" {
		keep := int(float64(len(content)) * float64(budget) / float64(tokens))
		if keep >= len(content) {
			keep = len(content) - 1
		}
		content = cutAtWord(content, keep)
		tokens = a.counter.Count(content)
	}

	el.Content = content
	el.TokenCount = tokens
	if original > 0 {
		el.CompressionLevel = 1 - float64(tokens)/float64(original)
	}
	return el
}

// cutAtWord truncates s to at most n bytes, preferring the previous word
// boundary and never splitting a rune.
func cutAtWord(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	if idx := strings.LastIndexAny(s[:n], " \t\n"); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
