package kobo

import (
	"github.com/tidwall/gjson"
)

// Choice is one entry of a select-question choice list (code to label).
type Choice struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Question describes one survey field from a form definition: the field key,
// its human label, the answer type, and the choice list for select questions.
type Question struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Choices []Choice `json:"choices,omitempty"`
}

// metadataTypes are survey rows that describe structure or device metadata,
// not answerable questions.
var metadataTypes = map[string]bool{
	"begin_group":  true,
	"end_group":    true,
	"begin_repeat": true,
	"end_repeat":   true,
	"note":         true,
	"start":        false, // start/end carry timestamps worth displaying
	"end":          false,
}

// parseFormDefinition extracts the question schema from an asset payload.
// content.survey holds the question rows; content.choices holds all choice
// lists keyed by list_name.
func parseFormDefinition(body []byte) []Question {
	doc := string(body)

	choiceLists := map[string][]Choice{}
	gjson.Get(doc, "content.choices").ForEach(func(_, row gjson.Result) bool {
		list := row.Get("list_name").String()
		if list == "" {
			return true
		}
		choiceLists[list] = append(choiceLists[list], Choice{
			Name:  row.Get("name").String(),
			Label: firstLabel(row),
		})
		return true
	})

	var questions []Question
	gjson.Get(doc, "content.survey").ForEach(func(_, row gjson.Result) bool {
		qType := row.Get("type").String()
		if metadataTypes[qType] {
			return true
		}
		name := row.Get("name").String()
		if name == "" {
			name = row.Get("$autoname").String()
		}
		if name == "" {
			return true
		}
		q := Question{
			Name:  name,
			Label: firstLabel(row),
			Type:  qType,
		}
		if list := row.Get("select_from_list_name").String(); list != "" {
			q.Choices = choiceLists[list]
		}
		questions = append(questions, q)
		return true
	})

	return questions
}

// firstLabel returns the first translation of a label array, or the plain
// label string for untranslated forms.
func firstLabel(row gjson.Result) string {
	label := row.Get("label")
	if label.IsArray() {
		arr := label.Array()
		if len(arr) > 0 {
			return arr[0].String()
		}
		return ""
	}
	return label.String()
}
