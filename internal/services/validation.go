package services

import (
	"strings"
	"unicode"
)

// Content gate thresholds. These are product heuristics tuned against real
// uploads, not derived from a model; keep them here so they can be adjusted
// without touching the checks themselves.
const (
	minDocumentChars     = 10
	minResumeWords       = 50
	minResumeKeywordHits = 3
	minJDWords           = 20
	minJDKeywordHits     = 2
	minJDLetterRatio     = 0.7
)

var resumeKeywords = []string{
	"education", "skills", "work", "university", "college",
	"degree", "bachelor", "master", "job", "position", "role",
	"achievements", "certification", "training",
}

var jdKeywords = []string{
	"requirements", "qualifications", "experience",
	"role", "position", "job", "candidate", "required",
	"must", "should", "knowledge", "ability", "work",
}

// ValidateResumeContent is a cheap gate that rejects content implausible as a
// resume before the paid scoring call is made. It is intentionally
// false-positive tolerant: borderline text passes.
func ValidateResumeContent(text string) (bool, string) {
	if len(strings.TrimSpace(text)) < minDocumentChars {
		return false, "The uploaded resume appears to be empty. Please upload a valid resume."
	}

	if len(strings.Fields(text)) < minResumeWords {
		return false, "The uploaded resume is too short. Please upload a complete resume with at least 50 words."
	}

	if countKeywords(text, resumeKeywords) < minResumeKeywordHits {
		return false, "The uploaded file doesn't appear to be a valid resume. Please upload a proper resume document."
	}

	return true, ""
}

// ValidateJDContent gates pasted job-description text. The letter-ratio check
// guards against binary garbage and non-prose pastes.
func ValidateJDContent(text string) (bool, string) {
	if len(strings.TrimSpace(text)) < minDocumentChars {
		return false, "Job description is empty. Please paste a valid job description."
	}

	var letterCount, totalCount int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letterCount++
		}
		if r != ' ' && r != '\n' {
			totalCount++
		}
	}
	if totalCount > 0 && float64(letterCount)/float64(totalCount) < minJDLetterRatio {
		return false, "The text appears to contain invalid characters. Please paste a proper job description."
	}

	wordCount := 0
	for _, word := range strings.Fields(text) {
		if strings.ContainsFunc(word, unicode.IsLetter) {
			wordCount++
		}
	}
	if wordCount < minJDWords {
		return false, "Job description is too short. Please paste a complete job description with at least 20 words."
	}

	if countKeywords(text, jdKeywords) < minJDKeywordHits {
		return false, "The text doesn't appear to be a valid job description. Please paste proper job description content with requirements and responsibilities."
	}

	return true, ""
}

func countKeywords(text string, keywords []string) int {
	textLower := strings.ToLower(text)
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			count++
		}
	}
	return count
}
