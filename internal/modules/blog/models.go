package blog

import "time"

// Post is a storefront blog article. Content is authored locally, unlike
// catalog data which comes from the remote services.
type Post struct {
	ID          string     `gorm:"primaryKey;type:char(36)"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:ux_posts_slug"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Body        string     `gorm:"type:mediumtext;not null"`
	CoverURL    string     `gorm:"type:varchar(512)"`
	PublishedAt *time.Time `gorm:"type:datetime(3);index:ix_posts_published_at"`
	CreatedAt   time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time  `gorm:"type:datetime(3);not null"`
}

func (Post) TableName() string { return "blog_posts" }

// Partner is a partner/brand page (federations, clubs, distributors).
type Partner struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_partners_slug"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:mediumtext;not null"`
	LogoURL   string    `gorm:"type:varchar(512)"`
	SiteURL   string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Partner) TableName() string { return "partners" }
