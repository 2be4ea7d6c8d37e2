package model

import "gorm.io/gorm"

// Entity is implemented by every catalog row type. Revision is the
// optimistic-concurrency version; zero means "not checked".
type Entity interface {
	Key() int
	Revision() int
}

type Author struct {
	ID      int    `json:"id"      gorm:"primaryKey"`
	Name    string `json:"name"    gorm:"type:varchar(255)" validate:"max=255"`
	Version int    `json:"version" gorm:"not null"          validate:"gte=0"`
}

func (Author) TableName() string { return "authors" }

func (a Author) Key() int { return a.ID }

func (a Author) Revision() int { return a.Version }

func (a *Author) BeforeCreate(*gorm.DB) error {
	a.Version = 1
	return nil
}

type Category struct {
	ID      int    `json:"id"      gorm:"primaryKey"`
	Name    string `json:"name"    gorm:"type:varchar(255)" validate:"max=255"`
	Version int    `json:"version" gorm:"not null"          validate:"gte=0"`
}

func (Category) TableName() string { return "categories" }

func (c Category) Key() int { return c.ID }

func (c Category) Revision() int { return c.Version }

func (c *Category) BeforeCreate(*gorm.DB) error {
	c.Version = 1
	return nil
}

// Book belongs to exactly one Author and one Category. Author and Category
// are only populated when read back from the store.
type Book struct {
	ID         int       `json:"id"                 gorm:"primaryKey"`
	Title      string    `json:"title"              gorm:"type:varchar(255)" validate:"max=255"`
	AuthorID   int       `json:"authorId"           gorm:"not null;index"    validate:"gte=0"`
	CategoryID int       `json:"categoryId"         gorm:"not null;index"    validate:"gte=0"`
	Author     *Author   `json:"author,omitempty"   gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
	Category   *Category `json:"category,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
	Version    int       `json:"version"            gorm:"not null"          validate:"gte=0"`
}

func (Book) TableName() string { return "books" }

func (b Book) Key() int { return b.ID }

func (b Book) Revision() int { return b.Version }

// BeforeCreate starts every new row at version 1.
func (b *Book) BeforeCreate(*gorm.DB) error {
	b.Version = 1
	return nil
}
