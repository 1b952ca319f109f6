package mock

import (
	"context"
	"log/slog"
	"slices"

	"progmap/lib/catalog"
	"progmap/lib/scraper"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("scrapers/mock")

// Scraper serves a fixed in-memory catalogue shaped like real portal
// data. It stands in for the live scrapers in demos and tests, and when
// the portals are unreachable.
type Scraper struct {
	key        string
	label      string
	name       string
	programmes []catalog.Programme
}

var _ scraper.Scraper = (*Scraper)(nil)

func (s *Scraper) Key() string {
	return s.key
}

func (s *Scraper) University() string {
	return s.name
}

func (s *Scraper) Scrape(ctx context.Context) ([]catalog.Programme, error) {
	ctx, span := tracer.Start(ctx, "scraper:Scrape")
	defer span.End()
	span.SetAttributes(
		attribute.String("university", s.name),
		attribute.Int("programmes", len(s.programmes)),
	)

	slog.InfoContext(ctx, "serving fixture catalogue", "university", s.name, "programmes", len(s.programmes))
	return slices.Clone(s.programmes), nil
}

// All returns the full set of fixture scrapers, regardless of which
// universities are enabled in configuration.
func All() []scraper.Scraper {
	return []scraper.Scraper{NewHKU(), NewCUHK()}
}

func NewHKU() *Scraper {
	const label = "HKU"
	return &Scraper{
		key:   "hku",
		label: label,
		name:  "University of Hong Kong (HKU)",
		programmes: []catalog.Programme{
			{
				Abbr:        "MSc(CompSc)",
				University:  label,
				Faculty:     "Faculty of Engineering",
				Title:       "Master of Science in Computer Science",
				Mode:        "Full-time / Part-time",
				Link:        "https://www.hku.hk/msc/computer-science",
				Duration:    "1 year full-time or 2 years part-time",
				Fees:        "HK$180,000 (full program)",
				Deadline:    "March 31, 2024",
				Description: "This program provides advanced training in computer science theories and practical skills. Students will gain expertise in algorithms, software engineering, artificial intelligence, and data structures.",
			},
			{
				Abbr:        "MSc(DataSci)",
				University:  label,
				Faculty:     "Faculty of Science",
				Title:       "Master of Science in Data Science",
				Mode:        "Full-time",
				Link:        "https://www.hku.hk/msc/data-science",
				Duration:    "1.5 years full-time",
				Fees:        "HK$200,000 (full program)",
				Deadline:    "April 30, 2024",
				Description: "Interdisciplinary program combining statistics, computer science, and domain expertise. Prepares students for data scientist roles in various industries.",
			},
			{
				Abbr:        "MSc(Eng)",
				University:  label,
				Faculty:     "Faculty of Engineering",
				Title:       "Master of Science in Engineering",
				Mode:        "Full-time / Part-time",
				Link:        "https://www.hku.hk/msc/engineering",
				Duration:    "1 year full-time or 2 years part-time",
				Fees:        "HK$160,000 (full program)",
				Deadline:    "May 31, 2024",
				Description: "Advanced engineering program with specializations in Civil, Electrical, Mechanical, and Industrial Engineering. Focus on innovation and practical applications.",
			},
			{
				Abbr:        "MSc(BA)",
				University:  label,
				Faculty:     "Faculty of Business and Economics",
				Title:       "Master of Science in Business Analytics",
				Mode:        "Full-time",
				Link:        "https://www.hku.hk/msc/business-analytics",
				Duration:    "1 year full-time",
				Fees:        "HK$220,000 (full program)",
				Deadline:    "June 30, 2024",
				Description: "Combines business acumen with analytical skills. Covers predictive analytics, optimization, and strategic decision-making for business applications.",
			},
			{
				Abbr:        "MSc(Fin)",
				University:  label,
				Faculty:     "Faculty of Business and Economics",
				Title:       "Master of Science in Finance",
				Mode:        "Full-time",
				Link:        "https://www.hku.hk/msc/finance",
				Duration:    "1 year full-time",
				Fees:        "HK$250,000 (full program)",
				Deadline:    "March 15, 2024",
				Description: "Rigorous quantitative finance program preparing students for careers in investment banking, asset management, and financial analysis.",
			},
		},
	}
}

func NewCUHK() *Scraper {
	const label = "CUHK"
	return &Scraper{
		key:   "cuhk",
		label: label,
		name:  "Chinese University of Hong Kong (CUHK)",
		programmes: []catalog.Programme{
			{
				Abbr:        "MSc(IE)",
				University:  label,
				Faculty:     "Faculty of Engineering",
				Title:       "Master of Science in Information Engineering",
				Mode:        "Full-time / Part-time",
				Link:        "https://www.cuhk.edu.hk/msc/information-engineering",
				Duration:    "1 year full-time or 2 years part-time",
				Fees:        "HK$170,000 (full program)",
				Deadline:    "April 15, 2024",
				Description: "Advanced program in information systems, telecommunications, and network engineering with strong industry connections.",
			},
			{
				Abbr:        "MSc(BA)",
				University:  label,
				Faculty:     "Faculty of Business Administration",
				Title:       "Master of Science in Business Analytics",
				Mode:        "Full-time",
				Link:        "https://www.cuhk.edu.hk/msc/business-analytics",
				Duration:    "1 year full-time",
				Fees:        "HK$190,000 (full program)",
				Deadline:    "May 1, 2024",
				Description: "Interdisciplinary program focusing on data-driven business decision making and analytics applications.",
			},
			{
				Abbr:        "MSc(Math)",
				University:  label,
				Faculty:     "Faculty of Science",
				Title:       "Master of Science in Mathematics",
				Mode:        "Full-time",
				Link:        "https://www.cuhk.edu.hk/msc/mathematics",
				Duration:    "1.5 years full-time",
				Fees:        "HK$140,000 (full program)",
				Deadline:    "February 28, 2024",
				Description: "Research-oriented program in pure and applied mathematics with flexible specialization options.",
			},
		},
	}
}
