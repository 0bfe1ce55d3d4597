package model

import "time"

type PromotionType string

const (
	PromotionHappyHour PromotionType = "happy_hour"
	PromotionDiscount  PromotionType = "discount"
	PromotionBundle    PromotionType = "bundle"
)

// Promotion is a time-boxed offer over one or more manufactured articles.
type Promotion struct {
	ID                  uint            `json:"id"`
	Denomination        string          `json:"denomination"`
	DiscountDescription string          `json:"discount_description,omitempty"`
	DateFrom            time.Time       `json:"date_from"`
	DateUntil           time.Time       `json:"date_until"`
	HourFrom            string          `json:"hour_from,omitempty"`
	HourUntil           string          `json:"hour_until,omitempty"`
	PromotionalPrice    float64         `json:"promotional_price"`
	Type                PromotionType   `json:"type"`
	DiscountPercent     *float64        `json:"discount_percent,omitempty"`
	MinimumAmount       *float64        `json:"minimum_amount,omitempty"`
	ImageID             *uint           `json:"image_id,omitempty"`
	Articles            []PromotionLine `json:"articles"`
	Retired             bool            `json:"retired"`
}

// PromotionLine ties an article (by id) and a quantity into a promotion.
type PromotionLine struct {
	ArticleID uint `json:"article_id"`
	Quantity  int  `json:"quantity"`
}

// ActiveAt reports whether the promotion window covers the given instant.
// Date bounds are inclusive; when both hour bounds are set they restrict
// the window within each day, as in a happy hour.
func (p *Promotion) ActiveAt(t time.Time) bool {
	if p.Retired {
		return false
	}
	if t.Before(p.DateFrom) || t.After(p.DateUntil) {
		return false
	}

	from, okFrom := clockMinutes(p.HourFrom)
	until, okUntil := clockMinutes(p.HourUntil)
	if !okFrom || !okUntil {
		// No usable hour bounds, the date window decides.
		return true
	}

	minute := t.Hour()*60 + t.Minute()
	if from <= until {
		return minute >= from && minute <= until
	}
	// The window crosses midnight, e.g. 22:00 to 02:00.
	return minute >= from || minute <= until
}

// clockMinutes parses a wall-clock string into minutes since midnight.
func clockMinutes(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if c, err := time.Parse(layout, s); err == nil {
			return c.Hour()*60 + c.Minute(), true
		}
	}
	return 0, false
}
