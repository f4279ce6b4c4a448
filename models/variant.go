package models

// Variant is the single purchasable-configuration value type. It covers
// both the simple name/option pair of regular products and the richer
// shoe configuration; unused fields stay zero. Equality is structural,
// never a comparison of serialized forms.
type Variant struct {
	Name     string  `bson:"name,omitempty" json:"name,omitempty"`
	Option   string  `bson:"option,omitempty" json:"option,omitempty"`
	Color    string  `bson:"color,omitempty" json:"color,omitempty"`
	Size     float64 `bson:"size,omitempty" json:"size,omitempty"`
	Width    string  `bson:"width,omitempty" json:"width,omitempty"`
	Material string  `bson:"material,omitempty" json:"material,omitempty"`
}

// IsZero reports whether the variant carries no selection at all. A nil
// receiver counts as zero so "no variant" can be expressed either way.
func (v *Variant) IsZero() bool {
	return v == nil || *v == Variant{}
}

// Equal reports structural equality. Two "no variant" values are equal
// regardless of whether they are nil or empty structs.
func (v *Variant) Equal(other *Variant) bool {
	if v.IsZero() || other.IsZero() {
		return v.IsZero() && other.IsZero()
	}
	return *v == *other
}
