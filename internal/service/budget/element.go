package budget

// highPriorityFloor marks elements that get truncated instead of dropped
// when their category budget runs out.
const highPriorityFloor = 8

// Element is one candidate piece of context competing for window space.
// TokenCount may be pre-set by the caller; the assembler counts it otherwise.
// CompressionLevel records the fraction trimmed away during packing.
type Element struct {
	Content          string
	Category         Category
	Priority         int
	Relevance        float64
	TokenCount       int
	CompressionLevel float64
}

// NewElement clamps priority to [0,10] and relevance to [0,1].
func NewElement(content string, category Category, priority int, relevance float64) Element {
	if priority < 0 {
		priority = 0
	}
	if priority > 10 {
		priority = 10
	}
	if relevance < 0 {
		relevance = 0
	}
	if relevance > 1 {
		relevance = 1
	}
	return Element{
		Content:   content,
		Category:  category,
		Priority:  priority,
		Relevance: relevance,
	}
}

// EffectivePriority orders elements for packing. Relevance boosts the base
// priority by up to a factor of two.
func (e Element) EffectivePriority() float64 {
	return float64(e.Priority) * (1 + e.Relevance)
}

func (e Element) HighPriority() bool {
	return e.Priority >= highPriorityFloor
}
