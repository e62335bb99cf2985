package domain

// Planet represents a planet of the catalog
type Planet struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"uniqueIndex;not null"`
	Climate        string `json:"climate"`
	Terrain        string `json:"terrain"`
	Population     string `json:"population"`
	Diameter       string `json:"diameter"`
	RotationPeriod string `json:"rotation_period"`
	OrbitalPeriod  string `json:"orbital_period"`
	Gravity        string `json:"gravity"`
}

// TableName specifies the table name
func (Planet) TableName() string {
	return "planets"
}

func (p Planet) EntityID() uint   { return p.ID }
func (p Planet) EntityKind() Kind { return KindPlanet }

func (p Planet) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"climate":         p.Climate,
		"terrain":         p.Terrain,
		"population":      p.Population,
		"diameter":        p.Diameter,
		"rotation_period": p.RotationPeriod,
		"orbital_period":  p.OrbitalPeriod,
		"gravity":         p.Gravity,
	}
}
