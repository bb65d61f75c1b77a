package oracle

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/resume_analysis.md
var resumeAnalysisPromptRaw string

//go:embed prompts/job_match.md
var jobMatchPromptRaw string

// ResumeAnalysisTemplate is the user payload for the resume-analysis call.
// Parsed once at package init; reused on every call.
var ResumeAnalysisTemplate = template.Must(template.New("resume_analysis").Parse(resumeAnalysisPromptRaw))

// JobMatchTemplate is the user payload for the per-posting enrichment call.
var JobMatchTemplate = template.Must(template.New("job_match").Parse(jobMatchPromptRaw))

// ResumeAnalysisSystemPrompt pins the resume-analysis response shape.
const ResumeAnalysisSystemPrompt = "You are a professional resume analyzer. Return ONLY valid JSON with these fields: " +
	"name (string), email (string), location (string), years_experience (number), " +
	"current_title (string), skills (array of strings, top 15), " +
	"industries (array of strings), seniority_level (junior|mid|senior|lead), " +
	"target_roles (array of 5 ideal job titles based on experience), " +
	"key_achievements (array of top 3 achievements from resume)."

// JobMatchSystemPrompt pins the enrichment response to bare JSON.
const JobMatchSystemPrompt = "You are an elite career coach. Return ONLY valid JSON. No markdown, no preamble."
