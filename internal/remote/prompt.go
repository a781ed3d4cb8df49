package remote

import (
	"strings"
	"text/template"

	"github.com/abhisek/mindscope/internal/assessment"
)

const systemPrompt = `You are an experienced psychological assessment analyst.
You write warm, specific and non-clinical feedback for a self-assessment
questionnaire. You never diagnose. All text you produce is in Simplified
Chinese. Respond only with a JSON object matching the requested schema.`

var userTemplate = template.Must(template.New("analysis").Parse(
	`Assessment topic: {{.Topic}}

The respondent chose these answers, in order:
{{.Transcript}}

Write a report with:
- summary: 2-3 sentences about the respondent in the context of "{{.Topic}}"
- dimensions: one entry for each of {{range $i, $d := .Dimensions}}{{if $i}}, {{end}}{{$d}}{{end}}, with an integer score from 0 to 100 and a short description
- strengths: 3 distinct strengths
- weaknesses: 2 areas to improve
- recommendations: 3 concrete, actionable suggestions
`))

type promptData struct {
	Topic      string
	Transcript string
	Dimensions []string
}

// Transcript joins the selected option texts in answer order.
func Transcript(responses []assessment.Response) string {
	parts := make([]string, len(responses))
	for i, r := range responses {
		parts[i] = r.SelectedOptionText
	}
	return strings.Join(parts, " | ")
}

func renderPrompt(topic string, responses []assessment.Response, dims []string) (string, error) {
	transcript := Transcript(responses)
	if transcript == "" {
		transcript = "(no answers)"
	}
	var b strings.Builder
	err := userTemplate.Execute(&b, promptData{
		Topic:      topic,
		Transcript: transcript,
		Dimensions: dims,
	})
	return b.String(), err
}
