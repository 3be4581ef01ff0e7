package model

// InstrumentType is a seeded lookup row classifying instruments by section.
// Seeded once, referenced everywhere, never mutated.
type InstrumentType struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// Instrument is one inventory unit. CheckedOutTo is nil while the
// instrument sits in storage; it and CheckedOutDate are set together at
// checkout and cleared together at return.
type Instrument struct {
	ID             int64  `json:"id"`
	TypeID         int64  `json:"type_id"`
	Serial         string `json:"serial,omitempty"`
	ConditionNotes string `json:"condition_notes,omitempty"`
	CheckedOutTo   *int64 `json:"checked_out_to,omitempty"`
	CheckedOutDate string `json:"checked_out_date,omitempty"`

	// Joined fields (not always populated).
	TypeName   string `json:"type_name,omitempty"`
	Section    string `json:"section,omitempty"`
	HolderName string `json:"holder_name,omitempty"`
}
