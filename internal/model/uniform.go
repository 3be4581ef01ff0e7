package model

// Uniform is one uniform unit. Uniforms are created at first checkout, so a
// row with a nil holder is one that has been checked out and returned.
type Uniform struct {
	ID             int64  `json:"id"`
	CoatSize       string `json:"coat_size,omitempty"`
	PantSize       string `json:"pant_size,omitempty"`
	CoatNumber     string `json:"coat_number,omitempty"`
	PantNumber     string `json:"pant_number,omitempty"`
	ConditionNotes string `json:"condition_notes,omitempty"`
	CheckedOutTo   *int64 `json:"checked_out_to,omitempty"`
	CheckedOutDate string `json:"checked_out_date,omitempty"`

	// Joined fields (not always populated).
	HolderName string `json:"holder_name,omitempty"`
}

// Shako is one shako (marching hat) unit. Same lifecycle as Uniform.
type Shako struct {
	ID             int64  `json:"id"`
	Size           string `json:"size,omitempty"`
	ConditionNotes string `json:"condition_notes,omitempty"`
	CheckedOutTo   *int64 `json:"checked_out_to,omitempty"`
	CheckedOutDate string `json:"checked_out_date,omitempty"`

	// Joined fields (not always populated).
	HolderName string `json:"holder_name,omitempty"`
}
