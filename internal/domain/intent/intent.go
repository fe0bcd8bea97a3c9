// Package intent defines the closed intent taxonomy and the classification
// result produced by the cascade.
package intent

// Intent is a closed enum of user intents the pipeline can resolve.
type Intent string

const (
	// VenueSearch is a query looking for a venue ("tìm nhà hàng", "recommend a place").
	VenueSearch Intent = "venue_search"
	// MenuInquiry is a question about dishes or menus.
	MenuInquiry Intent = "menu_inquiry"
	// TableInquiry is a question about tables, layouts or capacity.
	TableInquiry Intent = "table_inquiry"
	// VoucherInquiry is a question about vouchers or promotions.
	VoucherInquiry Intent = "voucher_inquiry"
	// AvailabilitySearch is the composite venue search + table availability path.
	AvailabilitySearch Intent = "availability_search"
	// General is the catch-all for queries with no clear intent.
	General Intent = "general"
)

// All lists every member of the taxonomy, in priority display order.
func All() []Intent {
	return []Intent{VenueSearch, MenuInquiry, TableInquiry, VoucherInquiry, AvailabilitySearch, General}
}

// Valid reports whether i is a member of the closed taxonomy.
func Valid(i Intent) bool {
	switch i {
	case VenueSearch, MenuInquiry, TableInquiry, VoucherInquiry, AvailabilitySearch, General:
		return true
	}
	return false
}

// Source identifies which cascade provider produced a classification.
type Source string

const (
	SourceEmbeddingLabel Source = "embedding_label"
	SourceOracle         Source = "oracle"
	SourceHeuristic      Source = "heuristic"
	SourceSimilarity     Source = "similarity"
	SourceUnresolved     Source = "unresolved"
)

// Result is a single classification outcome. It is produced once per query and
// never mutated, only superseded by a later cascade stage.
type Result struct {
	Intent     Intent
	Confidence float64
	Source     Source
	// Adjusted marks a result downgraded or rewritten by the verification stage.
	Adjusted bool
	// Rationale is free-text provider reasoning, kept for logging only.
	Rationale string
}

// Zero is the absent-signal result: general intent at zero confidence.
func Zero() Result {
	return Result{Intent: General, Confidence: 0, Source: SourceUnresolved}
}
