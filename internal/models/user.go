package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Phone        string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Name         string         `gorm:"type:varchar(100)" json:"name"`
	Avatar       string         `gorm:"type:varchar(255)" json:"avatar"`
	PasswordHash string         `gorm:"type:varchar(255)" json:"-"`
	CurrentOrgID uint64         `json:"current_org_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships []OrganizationMember `gorm:"foreignKey:UserID" json:"-"`
}
