package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project lives only inside its owning profile's projects column.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
}

type Profile struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"type:text;not null" json:"name"`
	Email     string                      `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Education *string                     `gorm:"type:text" json:"education"`
	Skills    datatypes.JSONSlice[string]  `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	Projects  datatypes.JSONSlice[Project] `gorm:"type:jsonb;not null;default:'[]'" json:"projects"`
	CreatedAt time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Normalize replaces absent arrays with empty ones so that the columns
// always hold a JSON array and clients never see null.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[string]{}
	}
	if p.Projects == nil {
		p.Projects = datatypes.JSONSlice[Project]{}
	}
	for i := range p.Projects {
		if p.Projects[i].Links == nil {
			p.Projects[i].Links = []string{}
		}
	}
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

func (p *Profile) AfterFind(tx *gorm.DB) error {
	p.Normalize()
	return nil
}
