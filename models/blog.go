package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlogImage struct {
	Src     string `bson:"src" json:"src"`
	Alt     string `bson:"alt" json:"alt"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// ContentBlock is one unit of editorial layout: text, a single image, a
// pull quote, or a side-by-side image pair.
type ContentBlock struct {
	Type    string      `bson:"type" json:"type"`
	Content string      `bson:"content,omitempty" json:"content,omitempty"`
	Src     string      `bson:"src,omitempty" json:"src,omitempty"`
	Alt     string      `bson:"alt,omitempty" json:"alt,omitempty"`
	Layout  string      `bson:"layout,omitempty" json:"layout,omitempty"`
	Caption string      `bson:"caption,omitempty" json:"caption,omitempty"`
	Images  []BlogImage `bson:"images,omitempty" json:"images,omitempty"`
}

type Blog struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string              `bson:"title" json:"title"`
	Slug          string              `bson:"slug" json:"slug"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	HeaderImage   string              `bson:"headerImage,omitempty" json:"headerImage,omitempty"`
	Featured      bool                `bson:"featured" json:"featured"`
	MagazineIssue string              `bson:"magazineIssue,omitempty" json:"magazineIssue,omitempty"`
	Category      string              `bson:"category" json:"category"`
	ContentBlocks []ContentBlock      `bson:"contentBlocks,omitempty" json:"contentBlocks,omitempty"`
	Author        string              `bson:"author,omitempty" json:"author,omitempty"`
	Tags          []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	MagazineRef   *primitive.ObjectID `bson:"magazineRef,omitempty" json:"magazineRef,omitempty"`
	PublishedAt   time.Time           `bson:"publishedAt" json:"publishedAt"`
}

type BlogRequest struct {
	Title         string         `json:"title" binding:"required"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	HeaderImage   string         `json:"headerImage"`
	Featured      bool           `json:"featured"`
	MagazineIssue string         `json:"magazineIssue"`
	Category      string         `json:"category" binding:"required"`
	ContentBlocks []ContentBlock `json:"contentBlocks"`
	Author        string         `json:"author"`
	Tags          []string       `json:"tags"`
}
