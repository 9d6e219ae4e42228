package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/outputparser"
	"github.com/tmc/langchaingo/prompts"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
)

const maxPageRunes = 20000

var (
	jobExtractionPrompt = prompts.NewPromptTemplate(`You are a job data extraction agent. Read the text of a job posting and pull out its structured details.

Ignore navigation, footers, lists of similar jobs and advertisements.
If a field is not present in the text leave it empty. Do not guess.

{{.formatInstructions}}

Posting text:
{{.content}}`, []string{"content", "formatInstructions"})

	resumePrompt = prompts.NewPromptTemplate(`You are a professional resume writer helping a candidate apply for public sector jobs in India.
Write a complete, well structured resume from the information below.

{{if .linkedInUrl}}LinkedIn profile: {{.linkedInUrl}}
{{end}}{{if .uploadedFiles}}Supporting documents: {{join ", " .uploadedFiles}}
{{end}}Candidate's request:
{{.prompt}}

{{.formatInstructions}}`, []string{"linkedInUrl", "uploadedFiles", "prompt", "formatInstructions"})

	verifyPrompt = prompts.NewPromptTemplate(`You are an HR screening expert. Decide whether the resume below was written by a real candidate.
Treat these as signs of a fake resume: placeholder or lorem ipsum text, contradictory dates or facts,
unrealistic job titles for the stated experience, and gibberish.

Resume:
{{.resumeText}}

{{.formatInstructions}}`, []string{"resumeText", "formatInstructions"})

	newsPrompt = prompts.NewPromptTemplate(`You are a journalist covering government and public sector job opportunities in India.
Write three short, recent-sounding news articles about recruitment drives, exam notifications or policy changes.

{{.formatInstructions}}`, []string{"formatInstructions"})
)

// LLMService wraps a language model with prompt templates and output checks.
// A nil *LLMService reports the AI features as unavailable.
type LLMService struct {
	Client   llms.Model
	validate *validator.Validate
}

func NewLLMService(client llms.Model) *LLMService {
	return &LLMService{
		Client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NewGeminiClient builds the Gemini model used in production.
func NewGeminiClient(ctx context.Context, apiKey, model string) (llms.Model, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return llm, nil
}

func (s *LLMService) Available() bool {
	return s != nil && s.Client != nil
}

func (s *LLMService) ready() error {
	if !s.Available() {
		return apperr.New(apperr.KindUnavailable, "AI service is not configured")
	}
	return nil
}

// ExtractJobDetails turns a scraped job page into a draft posting.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*dtos.JobDraft, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	content := truncateRunes(htmlToText(rawHTML), maxPageRunes)
	if content == "" {
		return nil, apperr.Validation("Page has no readable text")
	}
	return generate[dtos.JobDraft](ctx, s, jobExtractionPrompt, map[string]any{"content": content})
}

func (s *LLMService) GenerateResume(ctx context.Context, req *dtos.GenerateResumeRequest) (*dtos.GenerateResumeResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	files := req.UploadedFiles
	if files == nil {
		files = []string{}
	}
	return generate[dtos.GenerateResumeResult](ctx, s, resumePrompt, map[string]any{
		"linkedInUrl":   req.LinkedInURL,
		"uploadedFiles": files,
		"prompt":        req.Prompt,
	})
}

func (s *LLMService) VerifyResume(ctx context.Context, resumeText string) (*dtos.VerifyResumeResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return generate[dtos.VerifyResumeResult](ctx, s, verifyPrompt, map[string]any{
		"resumeText": truncateRunes(resumeText, maxPageRunes),
	})
}

func (s *LLMService) GenerateNews(ctx context.Context) (*dtos.NewsResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return generate[dtos.NewsResult](ctx, s, newsPrompt, map[string]any{})
}

// generate renders the prompt with the schema of T appended, asks the model
// once for JSON and decodes and validates the answer.
func generate[T any](ctx context.Context, s *LLMService, tmpl prompts.PromptTemplate, values map[string]any) (*T, error) {
	var zero T
	parser, err := outputparser.NewDefined(zero)
	if err != nil {
		return nil, fmt.Errorf("build output schema: %w", err)
	}
	values["formatInstructions"] = parser.GetFormatInstructions()

	prompt, err := tmpl.Format(values)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithJSONMode())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "AI generation failed", err)
	}
	var out T
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &out); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "AI generation failed", fmt.Errorf("decode model output: %w", err))
	}
	if err := s.validate.Struct(out); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "AI generation failed", fmt.Errorf("model output incomplete: %w", err))
	}
	return &out, nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite JSON mode.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
