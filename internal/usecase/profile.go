package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tendermatch/internal/domain"
	"tendermatch/internal/port"
)

const extractionPrompt = `Extract key company information from the following text:

%s

Output the following fields in JSON format:
1. name: Company name
2. description: Comprehensive company description
3. services: List of services offered
4. capabilities: List of company capabilities
5. expertise: List of company expertise areas

JSON format only, no explanation.`

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	braceJSONPattern  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ProfileExtractor turns free-form company profile text into a structured
// CompanyProfile, delegating to an LLM and degrading to a deterministic
// heuristic when the service or its output fails.
type ProfileExtractor struct {
	llm    port.LLM
	logger *zap.Logger
}

// NewProfileExtractor creates a profile extractor. llm may be nil, in which
// case only the heuristic is used.
func NewProfileExtractor(llm port.LLM, logger *zap.Logger) *ProfileExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileExtractor{llm: llm, logger: logger}
}

// Extract builds a CompanyProfile from profile text.
func (e *ProfileExtractor) Extract(text string) domain.CompanyProfile {
	if e.llm == nil {
		return HeuristicExtract(text)
	}

	response, err := e.llm.Generate(fmt.Sprintf(extractionPrompt, text))
	if err != nil {
		e.logger.Error("structured extraction failed, using heuristic",
			zap.String("model", e.llm.ModelName()),
			zap.Error(err))
		return HeuristicExtract(text)
	}

	profile, err := parseProfileJSON(response, text)
	if err != nil {
		e.logger.Error("failed to parse extraction response, using heuristic",
			zap.Error(err))
		return HeuristicExtract(text)
	}

	return profile
}

// parseProfileJSON locates a JSON object in the LLM response, preferring a
// fenced block over a bare brace-delimited substring, and parses it.
func parseProfileJSON(response, originalText string) (domain.CompanyProfile, error) {
	jsonText := response
	if m := fencedJSONPattern.FindStringSubmatch(response); m != nil {
		jsonText = strings.TrimSpace(m[1])
	} else if m := braceJSONPattern.FindStringSubmatch(response); m != nil {
		jsonText = strings.TrimSpace(m[1])
	}

	var parsed struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Services     []string `json:"services"`
		Capabilities []string `json:"capabilities"`
		Expertise    []string `json:"expertise"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return domain.CompanyProfile{}, fmt.Errorf("no parseable JSON object in response: %w", err)
	}

	profile := domain.CompanyProfile{
		Name:         parsed.Name,
		Description:  parsed.Description,
		Services:     parsed.Services,
		Capabilities: parsed.Capabilities,
		Expertise:    parsed.Expertise,
	}
	if profile.Name == "" {
		profile.Name = "Unknown Company"
	}
	if profile.Description == "" {
		profile.Description = firstChars(originalText, 500)
	}
	if profile.Services == nil {
		profile.Services = []string{}
	}
	if profile.Capabilities == nil {
		profile.Capabilities = []string{}
	}
	if profile.Expertise == nil {
		profile.Expertise = []string{}
	}

	return profile, nil
}

// HeuristicExtract is the deterministic fallback: first line as name, first
// 500 characters as description, keyword-triggered line bucketing into
// services, capabilities and expertise.
func HeuristicExtract(text string) domain.CompanyProfile {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	name := "Unknown Company"
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		name = strings.TrimSpace(lines[0])
	}

	var services, capabilities, expertise []string
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.Contains(lower, "service") || strings.Contains(lower, "provide") || strings.Contains(lower, "offer"):
			services = append(services, lower)
		case strings.Contains(lower, "capability"):
			capabilities = append(capabilities, lower)
		case strings.Contains(lower, "expertise") || strings.Contains(lower, "specialize"):
			expertise = append(expertise, lower)
		}
	}

	return domain.CompanyProfile{
		Name:         name,
		Description:  firstChars(text, 500),
		Services:     capList(services, "General services"),
		Capabilities: capList(capabilities, "General capabilities"),
		Expertise:    capList(expertise, "General expertise"),
	}
}

// capList truncates a list to 5 entries, substituting a single generic
// entry when the list is empty.
func capList(list []string, fallback string) []string {
	if len(list) == 0 {
		return []string{fallback}
	}
	if len(list) > 5 {
		return list[:5]
	}
	return list
}

// ProfileTextFromFile decodes uploaded profile bytes. Only plain text is
// supported; PDF and DOCX uploads are rejected explicitly.
func ProfileTextFromFile(content []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "txt":
		return string(content), nil
	case "pdf", "docx":
		return "", fmt.Errorf("%s processing not implemented", fileType)
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// firstChars returns the first n runes of s.
func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
