package model

// Category groups catalog articles. Categories can nest one level through
// ParentID; the remote API owns the hierarchy.
type Category struct {
	ID           uint   `json:"id"`
	Denomination string `json:"denomination"`
	ParentID     *uint  `json:"parent_id,omitempty"`
	BranchIDs    []uint `json:"branch_ids,omitempty"`
	Retired      bool   `json:"retired"`
}

// UnitOfMeasure is the measuring unit of an ingredient (grams, liters, units).
type UnitOfMeasure struct {
	ID           uint   `json:"id"`
	Denomination string `json:"denomination"`
}

// Image is a reference to an uploaded picture. Upload itself is handled by
// the remote API; only the id and URL travel through here.
type Image struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}
