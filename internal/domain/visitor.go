package domain

import "time"

type Visitor struct {
	ID              string     `json:"id"`
	IPAddress       string     `json:"ip_address"`
	Country         string     `json:"country,omitempty"`
	Region          string     `json:"region,omitempty"`
	City            string     `json:"city,omitempty"`
	PageVisited     string     `json:"page_visited"`
	UserAgent       string     `json:"user_agent,omitempty"`
	Referrer        string     `json:"referrer,omitempty"`
	VisitStart      time.Time  `json:"visit_start"`
	VisitEnd        *time.Time `json:"visit_end,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
}

type VisitRequest struct {
	PageVisited string `json:"page_visited"`
	Referrer    string `json:"referrer"`
}

type FinishVisitRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type PageCount struct {
	Page  string `json:"page"`
	Count int    `json:"count"`
}

type VisitorStats struct {
	TotalVisitors      int            `json:"total_visitors"`
	TodayVisitors      int            `json:"today_visitors"`
	WeekVisitors       int            `json:"week_visitors"`
	AvgDurationSeconds int            `json:"avg_duration_seconds"`
	TopCountries       []CountryCount `json:"top_countries"`
	TopPages           []PageCount    `json:"top_pages"`
}
