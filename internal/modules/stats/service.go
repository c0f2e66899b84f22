package stats

import (
	"context"
	"math"
	"time"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/pkg/sanitize"
	"remarkcrm/internal/repository"
)

// LeadLister is the read surface the summary needs
type LeadLister interface {
	List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error)
}

type Service struct {
	leads LeadLister
	loc   *time.Location
	now   func() time.Time
}

func NewService(leads LeadLister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{leads: leads, loc: loc, now: time.Now}
}

// unknownBucket collects leads with no value for a grouping field
const unknownBucket = "Unknown"

// Summary is the dashboard statistics payload
type Summary struct {
	Total          int              `json:"total"`
	ByStatus       map[string]int   `json:"by_status"`
	ByPriority     map[string]int   `json:"by_priority"`
	ByInquiryType  map[string]int   `json:"by_inquiry_type"`
	ByCity         map[string]int   `json:"by_city"`
	ConversionRate float64          `json:"conversion_rate"`
	AvgDaysToClose *float64         `json:"avg_days_to_realization"`
	FollowUps      FollowUpBadges   `json:"follow_ups"`
	Prices         PriceComparison  `json:"prices"`
}

// FollowUpBadges counts next-step dates relative to today
type FollowUpBadges struct {
	Overdue      int `json:"overdue"`
	DueToday     int `json:"due_today"`
	DueNext7Days int `json:"due_next_7_days"`
}

// PriceStats aggregates one price column over leads that have it
type PriceStats struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
}

// PriceComparison puts our indicative offers next to competitor prices
type PriceComparison struct {
	OurOffer   PriceStats `json:"our_offer"`
	Competitor PriceStats `json:"competitor"`
}

// Summarize computes the whole dashboard summary in one pass
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	all, err := s.leads.List(ctx, repository.LeadFilter{})
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Total:         len(all),
		ByStatus:      map[string]int{},
		ByPriority:    map[string]int{},
		ByInquiryType: map[string]int{},
		ByCity:        map[string]int{},
	}

	today := sanitize.DateOnly(s.now().In(s.loc))
	horizon := today.AddDate(0, 0, 7)

	converted := 0
	var closeDays []float64
	var ourOffers, competitorPrices []float64

	for i := range all {
		l := &all[i]

		sum.ByStatus[bucket(string(l.Status))]++
		sum.ByPriority[bucket(string(l.Priority))]++
		sum.ByInquiryType[bucket(l.InquiryType)]++
		sum.ByCity[bucket(l.City)]++

		if l.NextStepDate != nil {
			d := sanitize.DateOnly(*l.NextStepDate)
			switch {
			case d.Before(today):
				sum.FollowUps.Overdue++
			case d.Equal(today):
				sum.FollowUps.DueToday++
			case !d.After(horizon):
				sum.FollowUps.DueNext7Days++
			}
		}

		if l.IsConverted() {
			converted++
			if l.FirstContact != nil && l.RealizationDate != nil {
				days := l.RealizationDate.Sub(*l.FirstContact).Hours() / 24
				if days >= 0 {
					closeDays = append(closeDays, days)
				}
			}
		}

		if l.OurOffer != nil {
			ourOffers = append(ourOffers, *l.OurOffer)
		}
		if l.CompetitorPrice != nil {
			competitorPrices = append(competitorPrices, *l.CompetitorPrice)
		}
	}

	if sum.Total > 0 {
		sum.ConversionRate = math.Round(float64(converted)/float64(sum.Total)*1000) / 10
	}
	if len(closeDays) > 0 {
		avg := mean(closeDays)
		sum.AvgDaysToClose = &avg
	}
	sum.Prices.OurOffer = priceStats(ourOffers)
	sum.Prices.Competitor = priceStats(competitorPrices)

	return sum, nil
}

func bucket(v string) string {
	if v == "" {
		return unknownBucket
	}
	return v
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func priceStats(values []float64) PriceStats {
	stats := PriceStats{Count: len(values)}
	if len(values) == 0 {
		return stats
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := mean(values)
	stats.Min, stats.Max, stats.Avg = &min, &max, &avg
	return stats
}
