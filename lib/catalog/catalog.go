package catalog

import "time"

// Programme is one degree-course listing row plus optional detail-page
// fields. All fields are plain strings and any of them may be empty; the
// csv tag order is the canonical export column order.
type Programme struct {
	Abbr        string `csv:"abbr" json:"abbr"`
	University  string `csv:"university" json:"university"`
	Faculty     string `csv:"faculty" json:"faculty"`
	Title       string `csv:"title" json:"title"`
	Mode        string `csv:"mode" json:"mode"`
	Link        string `csv:"link" json:"link"`
	Duration    string `csv:"duration" json:"duration"`
	Fees        string `csv:"fees" json:"fees"`
	Start       string `csv:"start" json:"start"`
	Deadline    string `csv:"deadline" json:"deadline"`
	Description string `csv:"description" json:"description"`
}

// StructurallyEmpty reports whether every listing-card field is blank.
// Such rows are artifacts of the listing markup and are skipped.
func (p Programme) StructurallyEmpty() bool {
	return p.Abbr == "" && p.Faculty == "" && p.Title == "" && p.Mode == ""
}

// Highlights carries the detail-page fields. The zero value means the
// detail fetch was skipped or failed; merging it into a Programme is a
// no-op in that case.
type Highlights struct {
	Duration    string
	Fees        string
	Start       string
	Deadline    string
	Description string
}

func (h Highlights) FillProgramme(p *Programme) {
	p.Duration = h.Duration
	p.Fees = h.Fees
	p.Start = h.Start
	p.Deadline = h.Deadline
	p.Description = h.Description
}

// Result is the outcome of scraping one university.
type Result struct {
	University string      `json:"university"`
	Success    bool        `json:"success"`
	Programmes []Programme `json:"courses"`
	Error      string      `json:"error_message,omitempty"`
	ScrapedAt  time.Time   `json:"scraped_at"`
}

// TotalProgrammes counts programmes across successful results only.
func TotalProgrammes(results []Result) int {
	total := 0
	for _, r := range results {
		if r.Success {
			total += len(r.Programmes)
		}
	}
	return total
}

func SuccessCount(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Success {
			count++
		}
	}
	return count
}
