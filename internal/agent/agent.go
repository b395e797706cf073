// Package agent implements the compliance engine: prompt construction,
// model invocation and response parsing for guideline checks and document
// rewrites. Both entry points are total; every failure path resolves to a
// well-formed default value instead of an error.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"complyapi/internal/config"
	"complyapi/internal/model"
)

// maxPromptChars caps how much document text is embedded in a prompt.
const maxPromptChars = 3000

const (
	checkSystemPrompt = "You are an expert English writing compliance checker. " +
		"Analyze documents for grammar, style, clarity, and adherence to writing guidelines. " +
		"Provide detailed, structured feedback."

	modifySystemPrompt = "You are an expert editor. Rewrite documents to comply with " +
		"English writing guidelines while preserving the original meaning and intent."
)

// ChatCompleter is the slice of the OpenAI client the agent depends on.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ComplianceAgent checks document text against writing guidelines via a
// chat-completion endpoint, with a deterministic heuristic fallback when no
// endpoint is configured or reachable. Stateless per call.
type ComplianceAgent struct {
	client   ChatCompleter // nil when no API key is configured
	model    string
	defaults []string
	logger   *slog.Logger
}

// New builds an agent from configuration. An empty API key leaves the client
// nil and every call takes the fallback path.
func New(cfg config.OpenAIConfig, defaultGuidelines []string) *ComplianceAgent {
	var client ChatCompleter
	if cfg.APIKey != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			cc.BaseURL = cfg.BaseURL
		}
		if cfg.TimeoutSec > 0 {
			cc.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second}
		}
		client = openai.NewClientWithConfig(cc)
	}
	return &ComplianceAgent{
		client:   client,
		model:    cfg.Model,
		defaults: defaultGuidelines,
		logger:   slog.Default(),
	}
}

// NewWithClient wires an explicit chat client. Used by tests.
func NewWithClient(client ChatCompleter, modelName string, defaultGuidelines []string) *ComplianceAgent {
	return &ComplianceAgent{
		client:   client,
		model:    modelName,
		defaults: defaultGuidelines,
		logger:   slog.Default(),
	}
}

// CheckCompliance assesses text against the given guidelines (or the default
// set when none are supplied) and always returns a well-formed report.
func (a *ComplianceAgent) CheckCompliance(ctx context.Context, text string, guidelines []string) *model.ComplianceReport {
	if a.client == nil {
		return a.heuristicCheck(text)
	}
	if len(guidelines) == 0 {
		guidelines = a.defaults
	}

	prompt := compliancePrompt(text, guidelines)
	a.logPromptSize("check_compliance", prompt)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: checkSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil || len(resp.Choices) == 0 {
		a.logger.Warn("model call failed, degrading to heuristic check", "error", errText(err))
		return a.heuristicCheck(text)
	}
	return parseComplianceReport(resp.Choices[0].Message.Content)
}

// ModifyDocument rewrites text to comply with the given guidelines (or the
// default set) and always returns a well-formed result. Without a configured
// client the original text is returned unchanged.
func (a *ComplianceAgent) ModifyDocument(ctx context.Context, text string, guidelines []string) *model.ModificationResult {
	if a.client == nil {
		return fallbackModification(text)
	}
	if len(guidelines) == 0 {
		guidelines = a.defaults
	}

	prompt := modificationPrompt(text, guidelines)
	a.logPromptSize("modify_document", prompt)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: modifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.5,
		MaxTokens:   3000,
	})
	if err != nil || len(resp.Choices) == 0 {
		a.logger.Warn("model call failed, returning original text", "error", errText(err))
		return fallbackModification(text)
	}

	result := parseModificationResult(resp.Choices[0].Message.Content)
	result.ChangesMade = countWordChanges(text, result.ModifiedText)
	return result
}

func compliancePrompt(text string, guidelines []string) string {
	return fmt.Sprintf(`Analyze the following document for compliance with these English writing guidelines:

GUIDELINES:
%s

DOCUMENT TEXT:
%s

Please provide a detailed compliance report in the following JSON format:
{
    "status": "compliant" | "non_compliant" | "partial",
    "score": <number between 0-100>,
    "total_issues": <number>,
    "violations": [
        {
            "issue": "<description>",
            "suggestion": "<how to fix>",
            "severity": "low" | "medium" | "high",
            "category": "grammar" | "style" | "clarity" | "structure"
        }
    ],
    "summary": "<overall assessment>",
    "suggestions": ["<general suggestion 1>", "<general suggestion 2>"]
}`, enumerate(guidelines), truncate(text, maxPromptChars))
}

func modificationPrompt(text string, guidelines []string) string {
	return fmt.Sprintf(`Rewrite the following document to comply with these English writing guidelines:

GUIDELINES:
%s

ORIGINAL DOCUMENT:
%s

Please provide:
1. The modified document text
2. A brief summary of changes made

Format your response as:
MODIFIED TEXT:
[Your rewritten text here]

CHANGES SUMMARY:
[Summary of changes]`, enumerate(guidelines), truncate(text, maxPromptChars))
}

func enumerate(guidelines []string) string {
	var sb strings.Builder
	for i, g := range guidelines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, g)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// heuristicCheck is the deterministic no-model fallback. It is a placeholder
// stub, not a real guideline checker: word count and casing only.
func (a *ComplianceAgent) heuristicCheck(text string) *model.ComplianceReport {
	var violations []model.Violation

	if len(strings.Fields(text)) < 10 {
		violations = append(violations, model.Violation{
			Issue:      "Document is too short",
			Suggestion: "Provide more content for proper analysis",
			Severity:   "high",
			Category:   "structure",
		})
	}
	if isAllUpper(text) {
		violations = append(violations, model.Violation{
			Issue:      "Text is all uppercase",
			Suggestion: "Use proper capitalization",
			Severity:   "medium",
			Category:   "style",
		})
	}

	score := float64(100 - 20*len(violations))
	if score < 0 {
		score = 0
	}
	status := model.StatusNonCompliant
	switch {
	case score >= 80:
		status = model.StatusCompliant
	case score >= 50:
		status = model.StatusPartial
	}

	return &model.ComplianceReport{
		Status:      status,
		Score:       score,
		TotalIssues: len(violations),
		Violations:  violations,
		Summary:     "Basic compliance check completed (model API not configured)",
		Suggestions: []string{"Configure the model API key for detailed analysis"},
	}
}

func fallbackModification(text string) *model.ModificationResult {
	return &model.ModificationResult{
		ModifiedText: text,
		Summary:      "API not configured. Original text returned unchanged.",
		ChangesMade:  0,
	}
}

// isAllUpper reports whether text contains at least one cased character and
// no lowercase ones.
func isAllUpper(text string) bool {
	return text == strings.ToUpper(text) && text != strings.ToLower(text)
}

func (a *ComplianceAgent) logPromptSize(op, prompt string) {
	enc, err := tiktoken.EncodingForModel(a.model)
	if err != nil {
		return
	}
	a.logger.Debug("sending prompt",
		"op", op,
		"tokens", len(enc.Encode(prompt, nil, nil)),
		"chars", len(prompt),
	)
}

func errText(err error) string {
	if err == nil {
		return "empty model response"
	}
	return err.Error()
}
