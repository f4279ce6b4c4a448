package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductType is the closed set of product kinds. Behavior that depends on
// the kind (payload and variant validation) dispatches through
// productRules rather than ad-hoc string checks in handlers.
type ProductType string

const (
	ProductRegular  ProductType = "regular"
	ProductMagazine ProductType = "magazine"
	ProductShoe     ProductType = "shoe"
)

type Image struct {
	URL     string `bson:"url" json:"url"`
	AltText string `bson:"altText,omitempty" json:"altText,omitempty"`
}

// VariantOption is one selectable value inside a variant group, e.g.
// option "Red" in group "Color".
type VariantOption struct {
	Name            string  `bson:"name" json:"name"`
	PriceAdjustment float64 `bson:"priceAdjustment,omitempty" json:"priceAdjustment,omitempty"`
	Stock           int     `bson:"stock,omitempty" json:"stock,omitempty"`
}

type VariantGroup struct {
	Name    string          `bson:"name" json:"name"`
	Options []VariantOption `bson:"options" json:"options"`
}

type MagazineData struct {
	IssueNumber int       `bson:"issueNumber" json:"issueNumber"`
	CoverImage  Image     `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	PublishDate time.Time `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
	Pages       int       `bson:"pages,omitempty" json:"pages,omitempty"`
	IsFeatured  bool      `bson:"isFeatured,omitempty" json:"isFeatured,omitempty"`
}

type ShoeColor struct {
	Name    string  `bson:"name" json:"name"`
	HexCode string  `bson:"hexCode,omitempty" json:"hexCode,omitempty"`
	Images  []Image `bson:"images,omitempty" json:"images,omitempty"`
}

type ShoeData struct {
	Colors    []ShoeColor `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes     []float64   `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Widths    []string    `bson:"widths,omitempty" json:"widths,omitempty"`
	Materials []string    `bson:"materials,omitempty" json:"materials,omitempty"`
	Gender    string      `bson:"gender,omitempty" json:"gender,omitempty"`
}

type Ratings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ComparePrice float64            `bson:"comparePrice,omitempty" json:"comparePrice,omitempty"`
	ProductType  ProductType        `bson:"productType" json:"productType"`
	MagazineData *MagazineData      `bson:"magazineData,omitempty" json:"magazineData,omitempty"`
	ShoeData     *ShoeData          `bson:"shoeData,omitempty" json:"shoeData,omitempty"`
	Images       []Image            `bson:"images,omitempty" json:"images,omitempty"`
	Stock        int                `bson:"stock" json:"stock"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Ratings      Ratings            `bson:"ratings" json:"ratings"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Variants     []VariantGroup     `bson:"variants,omitempty" json:"variants,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a name. Invoked explicitly before
// persistence, never as an implicit save hook.
func Slugify(name string) string {
	slug := slugNonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// productRule holds the kind-specific checks for one ProductType: the
// payload a product of that kind must carry at write time, and which
// requested variants it accepts.
type productRule interface {
	validatePayload(p *Product) error
	validateVariant(p *Product, v *Variant) error
}

var productRules = map[ProductType]productRule{
	ProductRegular:  regularRule{},
	ProductMagazine: magazineRule{},
	ProductShoe:     shoeRule{},
}

// ValidatePayload checks the kind-specific payload before the product is
// persisted. Magazines must carry magazineData with an issue number;
// shoes must declare their size options.
func (p *Product) ValidatePayload() error {
	rule, ok := productRules[p.ProductType]
	if !ok {
		return fmt.Errorf("unknown product type %q", p.ProductType)
	}
	return rule.validatePayload(p)
}

// ValidateVariant checks the requested variant against this product's
// declared options. A nil or empty variant is always acceptable.
func (p *Product) ValidateVariant(v *Variant) error {
	if v.IsZero() {
		return nil
	}
	rule, ok := productRules[p.ProductType]
	if !ok {
		return fmt.Errorf("unknown product type %q", p.ProductType)
	}
	return rule.validateVariant(p, v)
}

type regularRule struct{}

func (regularRule) validatePayload(_ *Product) error {
	return nil
}

func (regularRule) validateVariant(p *Product, v *Variant) error {
	if len(p.Variants) == 0 {
		return fmt.Errorf("product has no variants")
	}
	for _, group := range p.Variants {
		if group.Name != v.Name {
			continue
		}
		for _, opt := range group.Options {
			if opt.Name == v.Option {
				return nil
			}
		}
	}
	return fmt.Errorf("invalid variant %s/%s", v.Name, v.Option)
}

type magazineRule struct{}

func (magazineRule) validatePayload(p *Product) error {
	if p.MagazineData == nil {
		return fmt.Errorf("magazine requires magazineData")
	}
	if p.MagazineData.IssueNumber < 1 {
		return fmt.Errorf("magazine requires a positive issue number")
	}
	return nil
}

func (magazineRule) validateVariant(_ *Product, _ *Variant) error {
	return fmt.Errorf("magazines have no variants")
}

type shoeRule struct{}

func (shoeRule) validatePayload(p *Product) error {
	if p.ShoeData == nil {
		return fmt.Errorf("shoe requires shoeData")
	}
	if len(p.ShoeData.Sizes) == 0 {
		return fmt.Errorf("shoe requires at least one size option")
	}
	return nil
}

func (shoeRule) validateVariant(p *Product, v *Variant) error {
	if p.ShoeData == nil {
		return fmt.Errorf("product has no shoe options")
	}
	if v.Color != "" && !shoeColorDeclared(p.ShoeData.Colors, v.Color) {
		return fmt.Errorf("invalid color %q", v.Color)
	}
	if v.Size != 0 && !containsFloat(p.ShoeData.Sizes, v.Size) {
		return fmt.Errorf("invalid size %v", v.Size)
	}
	if v.Width != "" && !containsString(p.ShoeData.Widths, v.Width) {
		return fmt.Errorf("invalid width %q", v.Width)
	}
	if v.Material != "" && !containsString(p.ShoeData.Materials, v.Material) {
		return fmt.Errorf("invalid material %q", v.Material)
	}
	return nil
}

func shoeColorDeclared(colors []ShoeColor, name string) bool {
	for _, c := range colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsFloat(haystack []float64, needle float64) bool {
	for _, f := range haystack {
		if f == needle {
			return true
		}
	}
	return false
}
