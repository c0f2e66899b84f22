package leads

import (
	"strings"
	"time"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/pkg/sanitize"
)

// duplicateThreshold is how many of the four match fields must agree
// (both sides populated) before two leads count as the same customer.
const duplicateThreshold = 2

// MatchKey carries the four fields the duplicate rule compares
type MatchKey struct {
	Name         string
	Phone        string
	Email        string
	FirstContact *time.Time
}

// KeyOf extracts the match key of a lead
func KeyOf(l *domain.Lead) MatchKey {
	var fc *time.Time
	if l.FirstContact != nil {
		d := sanitize.DateOnly(*l.FirstContact)
		fc = &d
	}
	return MatchKey{
		Name:         strings.TrimSpace(l.CustomerName),
		Phone:        strings.TrimSpace(l.Phone),
		Email:        strings.TrimSpace(l.Email),
		FirstContact: fc,
	}
}

// MatchScore counts fields on which a and b agree. A field enters the
// tally only when both sides have a value: an empty side neither matches
// nor mismatches, it is simply excluded.
func MatchScore(a, b MatchKey) int {
	score := 0
	if a.Name != "" && b.Name != "" && a.Name == b.Name {
		score++
	}
	if a.Phone != "" && b.Phone != "" && a.Phone == b.Phone {
		score++
	}
	if a.Email != "" && b.Email != "" && a.Email == b.Email {
		score++
	}
	if a.FirstContact != nil && b.FirstContact != nil && a.FirstContact.Equal(*b.FirstContact) {
		score++
	}
	return score
}

// IsDuplicate reports whether the candidate matches any existing lead on
// at least two fields.
func IsDuplicate(candidate MatchKey, existing []domain.Lead) bool {
	for i := range existing {
		if MatchScore(candidate, KeyOf(&existing[i])) >= duplicateThreshold {
			return true
		}
	}
	return false
}

// PlanRemovals walks all pairs of the collection (assumed in ascending id
// order) and marks the later lead of every duplicate pair, skipping leads
// already marked. Running the plan's deletions and planning again yields
// nothing, so a cleanup pass is idempotent. Cost is quadratic; fine for
// the low-thousands collections this CRM holds.
func PlanRemovals(all []domain.Lead) []int64 {
	marked := make(map[int64]bool)
	var ids []int64
	for i := range all {
		if marked[all[i].ID] {
			continue
		}
		a := KeyOf(&all[i])
		for j := i + 1; j < len(all); j++ {
			if marked[all[j].ID] {
				continue
			}
			if MatchScore(a, KeyOf(&all[j])) >= duplicateThreshold {
				marked[all[j].ID] = true
				ids = append(ids, all[j].ID)
			}
		}
	}
	return ids
}
