package openai

import "fmt"

// Message represents a chat message sent to the completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const systemPrompt = "You are a professional resume analyzer. Compare resumes against job descriptions " +
	"and provide a relevance score from 0-100 along with feedback on areas for improvement. " +
	"Include a line of the form \"Relevance Score: <number>\" in your answer."

const userPromptTemplate = "Analyze this resume:\n\n%s\n\nBased on the following job description:\n\n%s"

// BuildMessages creates the chat messages for one resume analysis request.
// Both texts are embedded verbatim.
func BuildMessages(resumeText, jobDescription string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptTemplate, resumeText, jobDescription)},
	}
}
