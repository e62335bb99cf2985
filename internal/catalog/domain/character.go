package domain

// Character represents a person of the catalog, exposed as "people" over HTTP
type Character struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	Gender    string `json:"gender"`
	BirthYear string `json:"birth_year"`
	Height    string `json:"height"`
	Mass      string `json:"mass"`
	HairColor string `json:"hair_color"`
	EyeColor  string `json:"eye_color"`
	SkinColor string `json:"skin_color"`
}

// TableName specifies the table name
func (Character) TableName() string {
	return "characters"
}

func (c Character) EntityID() uint   { return c.ID }
func (c Character) EntityKind() Kind { return KindCharacter }

func (c Character) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":         c.ID,
		"name":       c.Name,
		"gender":     c.Gender,
		"birth_year": c.BirthYear,
		"height":     c.Height,
		"mass":       c.Mass,
		"hair_color": c.HairColor,
		"eye_color":  c.EyeColor,
		"skin_color": c.SkinColor,
	}
}
