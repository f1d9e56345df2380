package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/ai"
	"github.com/spigell/ishmatch/internal/experience"
	"github.com/spigell/ishmatch/internal/logger"
	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "You assess job vacancies for job seekers in Uzbekistan. Reply with JSON only."

	defaultMaxLogLength     = 200
	maxUserInstructionRunes = 500
	maxDescriptionRunes     = 4000
)

// PromptOverrides are user preferences inserted into the prompt.
type PromptOverrides struct {
	ExtraCriteria    string `mapstructure:"extra-criteria"`
	DealBreakers     string `mapstructure:"deal-breakers"`
	UserInstructions string `mapstructure:"user-instructions"`
}

// Matcher implements ai.Matcher on top of a Gemini Generator.
type Matcher struct {
	generator contentGenerator
	minScore  float64
	lang      experience.Lang
	overrides PromptOverrides
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Matcher = (*Matcher)(nil)

func NewMatcher(generator contentGenerator, minScore float64, maxLogLength int, log *zap.Logger) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Matcher{
		generator: generator,
		minScore:  minScore,
		lang:      experience.Uzbek,
		logger:    logger.WithFields(log, logger.AIFields(Provider, generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (m *Matcher) SetPromptOverrides(overrides PromptOverrides) {
	m.overrides = overrides
}

// SetLanguage selects the language of the reason and of experience labels.
func (m *Matcher) SetLanguage(lang experience.Lang) {
	m.lang = lang
}

func (m *Matcher) Evaluate(ctx context.Context, profile *match.Profile, job *match.Job, result match.Result) (*ai.FitAssessment, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	prompt, err := m.buildPrompt(profile, job, result)
	if err != nil {
		return nil, err
	}

	log := m.logger.With(logger.JobFields(job.ID.String(), result.Score)...)
	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if m.minScore > 0 && assessment.Score < m.minScore {
		log.Debug("set fit to false by score threshold",
			zap.Float64("ai_score", assessment.Score),
			zap.Float64("threshold", m.minScore),
		)
		assessment.Fit = false
	}

	assessment.Raw = raw
	return assessment, nil
}

func (m *Matcher) buildPrompt(profile *match.Profile, job *match.Job, result match.Result) (string, error) {
	profileJSON, err := json.MarshalIndent(m.profilePayload(profile), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(m.jobPayload(job), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	scoreJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal score payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nJob:\n{{JOB_JSON}}\n\nScore:\n{{SCORE_JSON}}\n\nJSON Response:"
	}

	replacer := strings.NewReplacer(
		"{{LANGUAGE}}", languageName(m.lang),
		"{{EXTRA_CRITERIA}}", orNone(sanitizeLine(m.overrides.ExtraCriteria)),
		"{{DEAL_BREAKERS}}", orNone(sanitizeLine(m.overrides.DealBreakers)),
		"{{USER_INSTRUCTIONS}}", sanitizeBlock(m.overrides.UserInstructions),
		"{{PROFILE_JSON}}", string(profileJSON),
		"{{JOB_JSON}}", string(jobJSON),
		"{{SCORE_JSON}}", string(scoreJSON),
	)

	return replacer.Replace(template), nil
}

func (m *Matcher) profilePayload(profile *match.Profile) map[string]any {
	payload := map[string]any{
		"region":     regionPayload(profile.RegionID),
		"district":   profile.DistrictID,
		"category":   profile.CategoryID,
		"experience": experience.Label(profile.Experience, nil, m.lang),
	}
	if profile.ExpectedSalaryMin != nil {
		payload["expected_salary_min"] = *profile.ExpectedSalaryMin
	}
	return payload
}

func (m *Matcher) jobPayload(job *match.Job) map[string]any {
	payload := map[string]any{
		"id":          job.ID,
		"title":       job.Title,
		"employer":    job.Employer,
		"region":      regionPayload(job.RegionID),
		"location":    job.Location,
		"category":    job.CategoryID,
		"description": utils.TruncateForLog(job.Description, maxDescriptionRunes),
	}
	if job.Experience != "" {
		payload["experience"] = experience.Label(job.Experience, nil, m.lang)
	}
	if job.SalaryMin != nil {
		payload["salary_min"] = *job.SalaryMin
	}
	return payload
}

func regionPayload(id match.ID) string {
	if name := match.RegionName(id); name != "" {
		return name
	}
	return id.String()
}

func languageName(lang experience.Lang) string {
	if lang == experience.Russian {
		return "Russian"
	}
	return "Uzbek (Latin script)"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// sanitizeLine folds s into one line and swaps square brackets for round
// ones so input cannot open a new prompt section.
func sanitizeLine(s string) string {
	s = strings.NewReplacer("[", "(", "]", ")").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func sanitizeBlock(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxUserInstructionRunes {
		s = string(runes[:maxUserInstructionRunes])
	}

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = sanitizeLine(line); line != "" {
			lines = append(lines, "  - "+line)
		}
	}

	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

func parseResponse(raw string) (*ai.FitAssessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.FitAssessment{
		Fit:    coerceBool(data["fit"]),
		Score:  score,
		Reason: coerceString(data["reason"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	raw = strings.TrimSpace(raw)
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	return raw
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes" || lower == "ha" || lower == "да"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
