package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/internal/service/budget"
	"github.com/warrenhq/warren/pkg/log"
)

// systemPrompt is shared by every tier. Compliance posture lives here so it
// survives even when no disclaimer was retrieved.
const systemPrompt = `You are Warren, a writing assistant for licensed financial advisors.
Write clear, professional marketing content in the advisor's voice.
Match the tone and structure of the approved examples when they are provided.
Reproduce required disclosures faithfully and never weaken regulatory language.
Keep claims factual and conservative.`

// staticCompliance replaces retrieved disclosures when none made it into the
// prompt. The generated draft still needs regulatory language to build on.
const staticCompliance = `All investing involves risk, including possible loss of principal.
Do not promise or project returns, and do not cite performance figures without their source.
Do not give individualized investment, tax, or legal advice.
Where performance is discussed, state that past performance does not guarantee future results.`

// Packing priorities. User input, compliance language and the draft under
// revision sit at or above the truncate-not-drop floor; supporting context is
// droppable when the window runs out.
const (
	priorityUserInput    = 10
	priorityCompliance   = 9
	priorityDraft        = 9
	priorityExamples     = 7
	priorityDocuments    = 6
	priorityConversation = 5

	// supportRelevance ranks context that carries no retrieval score.
	supportRelevance = 0.5
)

// Per-tier category sets: which shares of the window each tier lets the
// assembler pack.
var (
	advancedCategories = []budget.Category{
		budget.CategoryConversation,
		budget.CategoryCompliance,
		budget.CategoryExamples,
		budget.CategoryDocuments,
		budget.CategoryUserInput,
		budget.CategoryCurrentContent,
	}
	standardCategories = []budget.Category{
		budget.CategoryCompliance,
		budget.CategoryExamples,
		budget.CategoryUserInput,
		budget.CategoryCurrentContent,
	}
	legacyCategories = []budget.Category{
		budget.CategoryUserInput,
		budget.CategoryCurrentContent,
	}
)

// PromptBuilder turns a generation input into a budget-packed prompt.
type PromptBuilder struct {
	assembler *budget.Assembler
}

func NewPromptBuilder(counter budget.Counter) *PromptBuilder {
	return &PromptBuilder{assembler: budget.NewAssembler(counter)}
}

// Build packs the input's context into the partition for the request type,
// restricted to the given categories, and renders the prompt sections in a
// fixed order.
func (b *PromptBuilder) Build(ctx context.Context, in Input, categories []budget.Category) (string, error) {
	cfg, err := budget.ForRequestType(in.Request.Type)
	if err != nil {
		return "", fmt.Errorf("failed to resolve budget partition: %w", err)
	}

	assembly := b.assembler.Assemble(cfg, candidates(in, includeSet(categories)))

	log.FromCtx(ctx).Debug().
		Str("request_type", string(cfg.RequestType)).
		Int("tokens_used", assembly.Ledger.TotalUsed()).
		Int("truncated", assembly.Truncated).
		Int("dropped", assembly.Dropped).
		Msg("context assembled")

	return renderPrompt(in, assembly), nil
}

// candidates builds the packing elements for the included categories.
// Retrieved evidence carries its search score as relevance; keyword
// disclaimers score zero and rank on priority alone.
func candidates(in Input, include map[budget.Category]bool) []budget.Element {
	var out []budget.Element

	add := func(content string, cat budget.Category, priority int, relevance float64) {
		if !include[cat] || strings.TrimSpace(content) == "" {
			return
		}
		out = append(out, budget.NewElement(content, cat, priority, relevance))
	}

	add(in.Request.Prompt, budget.CategoryUserInput, priorityUserInput, 1)
	add(in.Request.CurrentContent, budget.CategoryCurrentContent, priorityDraft, 1)
	for _, item := range in.Bundle.Disclaimers {
		add(formatEvidence(item), budget.CategoryCompliance, priorityCompliance, item.Score)
	}
	for _, item := range in.Bundle.Examples {
		add(formatEvidence(item), budget.CategoryExamples, priorityExamples, item.Score)
	}
	for _, doc := range in.Session.Documents {
		add(formatDocument(doc), budget.CategoryDocuments, priorityDocuments, supportRelevance)
	}
	add(in.Session.Conversation, budget.CategoryConversation, priorityConversation, supportRelevance)

	return out
}

func renderPrompt(in Input, assembly budget.Assembly) string {
	var b strings.Builder

	section(&b, "Approved examples", assembly.Content(budget.CategoryExamples))

	if disclosures := assembly.Content(budget.CategoryCompliance); len(disclosures) > 0 {
		section(&b, "Required disclosures", disclosures)
	} else {
		section(&b, "Compliance requirements", []string{staticCompliance})
	}

	section(&b, "Session documents", assembly.Content(budget.CategoryDocuments))
	section(&b, "Conversation so far", assembly.Content(budget.CategoryConversation))
	section(&b, "Current draft", assembly.Content(budget.CategoryCurrentContent))

	b.WriteString("## Task\n")
	fmt.Fprintf(&b, "Content category: %s\n", in.Request.Category)
	if in.Request.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", in.Request.Audience)
	}
	for _, chunk := range assembly.Content(budget.CategoryUserInput) {
		b.WriteString(chunk)
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, header string, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("## ")
	b.WriteString(header)
	b.WriteByte('\n')
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteString("\n\n")
	}
}

func formatEvidence(item core.EvidenceItem) string {
	if item.Title == "" {
		return item.Body
	}
	return item.Title + "\n" + item.Body
}

func formatDocument(doc core.SessionDocument) string {
	return fmt.Sprintf("%s (%d words)\n%s", doc.Title, doc.WordCount, doc.Summary)
}

func includeSet(categories []budget.Category) map[budget.Category]bool {
	set := make(map[budget.Category]bool, len(categories))
	for _, cat := range categories {
		set[cat] = true
	}
	return set
}
