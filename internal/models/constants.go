package models

// Analysis modes. Each is bound to one of the prompt templates below.
const (
	ModeGeneral    = "general"
	ModeTechnical  = "technical"
	ModeExperience = "experience"
	ModeMatch      = "match"
)

// Modes lists the recognized analysis modes.
var Modes = []string{ModeGeneral, ModeTechnical, ModeExperience, ModeMatch}

// Resume analysis prompt templates. Placeholders are filled in order:
// retrieved context first, then the question.
var ResumePrompts = map[string]string{
	ModeGeneral: `You are an expert resume analyzer and technical recruiter.
Analyze the resume context below to provide comprehensive insights about the candidate.

Context: %s
Question: %s

Provide structured, professional analysis focusing on qualifications, experience, and role fit.
Answer: `,
	ModeTechnical: `You are a senior technical recruiter. Focus on technical skills analysis.

Extract and analyze:
- Programming languages and proficiency
- Frameworks, tools, and technologies
- Years of experience with each skill
- Technical certifications
- Project complexity indicators

Context: %s
Question: %s

Structure as: 1) Primary Skills 2) Secondary Skills 3) Tools/Frameworks 4) Experience Level
Answer: `,
	ModeExperience: `You are an HR professional analyzing work experience and career progression.

Focus on:
- Career timeline and progression
- Job responsibilities and scope
- Achievements and impact
- Leadership and management experience
- Industry background

Context: %s
Question: %s

Structure as: 1) Career Summary 2) Key Positions 3) Achievements 4) Progression Analysis
Answer: `,
	ModeMatch: `You are evaluating candidate-role fit. Analyze how well this candidate matches specific requirements.

Assess:
- Required skills alignment
- Experience level match
- Industry background relevance
- Growth potential
- Potential concerns

Context: %s
Question: %s

Structure as: 1) Match Score 2) Strengths 3) Gaps 4) Recommendations
Answer: `,
}

// QuickQuestions maps one-shot analysis shortcuts to the question they ask.
var QuickQuestions = map[string]string{
	"Summary":            "Provide a comprehensive professional summary of this candidate including their key strengths, experience level, and notable achievements.",
	"Technical Skills":   "List all technical skills mentioned, categorized by proficiency level and years of experience.",
	"Experience":         "Summarize the candidate's work experience including roles, companies, duration, and key responsibilities.",
	"Education":          "Detail the candidate's educational background, certifications, and relevant training.",
	"Achievements":       "Highlight the candidate's most significant professional achievements and accomplishments.",
	"Leadership":         "Identify any leadership, management, or team collaboration experience.",
	"Career Progression": "Analyze the candidate's career progression and growth trajectory.",
	"Red Flags":          "Identify any potential concerns such as employment gaps, frequent job changes, or skill misalignments.",
}
