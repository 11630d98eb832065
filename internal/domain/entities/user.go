package entities

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// User is a registered account that may opt in to meeting reports
type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email             string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName          string    `json:"full_name" gorm:"type:varchar(255)"`
	MonitoringEnabled bool      `json:"monitoring_enabled" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// DisplayName returns the full name, or a name derived from the email
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return NameFromEmail(u.Email)
}

// NameFromEmail title-cases the local part of an email address:
// "john.smith@x.com" becomes "John.Smith".
func NameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	return titleCase(local)
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
