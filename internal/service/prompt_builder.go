package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"ux_auditor/internal/domain/models"

	"github.com/invopop/jsonschema"
	"golang.org/x/net/html"
)

const maxHintChars = 300

// Prompts is the pair of instructions sent to the model.
type Prompts struct {
	System string
	User   string
}

var systemPrompt = buildSystemPrompt()

var hintTags = map[string]bool{
	"img": true, "button": true, "a": true, "input": true, "label": true, "form": true,
	"nav": true, "header": true, "footer": true, "br": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var voidTags = map[string]bool{"img": true, "input": true, "br": true, "hr": true}

// resultSchema renders the JSON schema of models.AuditResult for the prompt.
func resultSchema() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&models.AuditResult{})
	schema.Version = ""
	schema.ID = ""

	b, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("marshal audit result schema: %v", err))
	}
	return string(b)
}

func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString(`You are a UX + accessibility auditor specializing in WCAG/Section 508 and Nielsen heuristics. `)
	b.WriteString(`Evaluate the provided HTML or extracted page content and produce a JSON object matching the exact schema. `)
	b.WriteString(`Output MUST be valid JSON only, with these keys: overall_score, summary, accessibility_issues, ux_improvements, quick_fixes, unknowns. `)
	b.WriteString(`For each reported issue include evidence strings that point to concrete HTML patterns and, when possible, the first matching DOM snippet (single-line HTML fragment) that triggered the finding (e.g., "<img src=\"...\">" or "<button aria-hidden=\"true\"></button>"). `)
	b.WriteString(`Also include an approximate CSS selector (field: "selector") or XPath (field: "xpath") for the element when possible. `)
	b.WriteString(`If you cannot determine something, add it to unknowns. `)
	b.WriteString(`Do not wrap the JSON in markdown code fences and do not include any extra keys.`)
	b.WriteString("\n\nJSON schema of the response:\n")
	b.WriteString(resultSchema())
	return b.String()
}

// BuildPrompts composes the system and user instructions for one audit.
func BuildPrompts(mode models.AuditMode, analyzedTarget, content string) Prompts {
	return Prompts{
		System: systemPrompt,
		User:   buildUserPrompt(mode, analyzedTarget, content, firstSnippet(content)),
	}
}

func buildUserPrompt(mode models.AuditMode, analyzedTarget, content, hint string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AnalyzedTarget: %s\n\n", analyzedTarget)
	fmt.Fprintf(&b, "Mode: %s\n\n", mode)
	fmt.Fprintf(&b, "Content:\n%s\n\n", content)
	b.WriteString(`HINT: When listing issues, if possible include the first matching DOM snippet that triggered the issue in the "evidence" field (single-line, exact HTML). `)
	b.WriteString(`Also include an approximate CSS selector (field: "selector") or XPath (field: "xpath") for the element if you can. `)
	fmt.Fprintf(&b, "For reference, an example snippet from the content: %s\n\n", hint)
	fmt.Fprintf(&b, `Please respond ONLY with JSON matching the schema. Start the summary with "Analyzed: %s -" and keep it 1-3 sentences. `, analyzedTarget)
	b.WriteString(`overall_score is integer 0-100. `)
	b.WriteString(`Provide arrays for accessibility_issues and ux_improvements with severity High|Medium|Low and evidence and recommendation strings. `)
	b.WriteString(`Provide quick_fixes as an array of {title, diff_like_suggestion}. `)
	b.WriteString(`Provide unknowns as array of strings. Every array must be present, even when empty.`)
	return b.String()
}

// firstSnippet finds the first element likely to matter for accessibility
// (images, controls, landmarks, headings) and returns it as a single line.
// Without one it falls back to the start of the content.
func firstSnippet(content string) string {
	if content == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return clipRunes(collapseWhitespace(content), maxHintChars)
		case html.StartTagToken, html.SelfClosingTagToken:
			snippet := string(tokenizer.Raw())
			name, _ := tokenizer.TagName()
			tag := string(name)
			if !hintTags[tag] {
				continue
			}
			if tt == html.StartTagToken && !voidTags[tag] {
				snippet += closingText(tokenizer, tag)
			}
			return clipRunes(strings.TrimSpace(strings.ReplaceAll(snippet, "\n", " ")), maxHintChars)
		}
	}
}

// closingText returns "text</tag>" when the element is closed right after
// its text, or nothing.
func closingText(tokenizer *html.Tokenizer, tag string) string {
	var text string
	next := tokenizer.Next()
	if next == html.TextToken {
		text = string(tokenizer.Raw())
		next = tokenizer.Next()
	}
	if next != html.EndTagToken {
		return ""
	}
	raw := string(tokenizer.Raw())
	if name, _ := tokenizer.TagName(); string(name) != tag {
		return ""
	}
	return text + raw
}
