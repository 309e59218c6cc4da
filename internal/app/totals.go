package app

import "github.com/avoron/planpoker/internal/domain"

// RecomputeTotals sums every story's finalized scores per role, from
// scratch. Incremental updates would drift on partial edits.
func RecomputeTotals(room *domain.Room) domain.Scores {
	var t domain.Scores
	for _, f := range room.Features {
		for _, s := range f.Stories {
			t.BE += s.FinalScores.BE
			t.FE += s.FinalScores.FE
			t.QA += s.FinalScores.QA
		}
	}
	return t
}
