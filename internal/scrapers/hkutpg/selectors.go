package hkutpg

// The TPG admissions portal renders programme cards into a results
// container through paginationjs, with the pagination control underneath.
// Detail pages are server rendered, so they only need a plain HTTP fetch.
const (
	selProgrammeCard = "#programme-listing-results > a"
	selNextPage      = "li.J-paginationjs-next"
	selActivePage    = "li.J-paginationjs-page.active"

	selCardFaculty = ".programme-faculty"
	selCardTitle   = ".programme-title"
	selCardAbbr    = ".abbreviation"
	selCardMode    = ".mode-of-study"

	selHighlightItem  = "#FullTimeTab .highlights-item"
	selHighlightTitle = ".highlights-item-title"
	selHighlightDesc  = ".highlights-item-description"
)
