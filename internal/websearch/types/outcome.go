package types

// Outcome is the result of one provider call: either Ok with an ordered
// (possibly empty) list of results, or Failed with a reason.
type Outcome struct {
	Provider ProviderID
	Results  []SearchResult
	Err      error
}

// Ok returns a successful outcome. A nil slice is normalized to an empty one.
func Ok(provider ProviderID, results []SearchResult) Outcome {
	if results == nil {
		results = []SearchResult{}
	}
	return Outcome{Provider: provider, Results: results}
}

// Failed returns a failed outcome carrying the reason.
func Failed(provider ProviderID, err error) Outcome {
	return Outcome{Provider: provider, Err: err}
}

// IsOk reports whether the provider call succeeded.
func (o Outcome) IsOk() bool {
	return o.Err == nil
}
