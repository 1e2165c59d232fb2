package gen

import (
	"database/sql"
	"time"
)

type Sequence struct {
	Name      string
	NextValue int64
}

type Url struct {
	ID        string
	Url       string
	Slug      string
	UserID    sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

type User struct {
	ID         string
	Email      string
	Name       string
	ProviderID string
	AvatarUrl  sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Visit struct {
	ID              string
	UrlID           string
	ReferrerDomain  sql.NullString
	Browser         sql.NullString
	OperatingSystem sql.NullString
	DeviceType      string
	Language        sql.NullString
	VisitorHash     sql.NullString
	CreatedAt       time.Time
}
