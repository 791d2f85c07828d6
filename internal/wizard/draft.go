package wizard

import (
	"maps"

	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/steps"
)

// Draft is the partial submission of one wizard run.
type Draft struct {
	ID    string
	Steps map[int]models.Answers
}

// With returns a copy of d with step n replaced by answers.
func (d Draft) With(n int, answers models.Answers) Draft {
	next := Draft{ID: d.ID, Steps: make(map[int]models.Answers, len(d.Steps)+1)}
	maps.Copy(next.Steps, d.Steps)
	next.Steps[n] = answers.Clone()
	return next
}

// Merge flattens all step answers into one mapping. Steps never share field
// names, so the merge order does not matter.
func (d Draft) Merge() models.Answers {
	out := models.Answers{}
	for i := 1; i <= steps.Count; i++ {
		maps.Copy(out, d.Steps[i])
	}
	return out
}

// Completed reports whether steps 1..n-1 all have answers.
func (d Draft) Completed(n int) bool {
	for i := 1; i < n; i++ {
		if _, ok := d.Steps[i]; !ok {
			return false
		}
	}
	return true
}
