package domain

// Starship represents a starship of the catalog
type Starship struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"uniqueIndex;not null"`
	Model         string `json:"model"`
	Manufacturer  string `json:"manufacturer"`
	StarshipClass string `json:"starship_class"`
	CostInCredits string `json:"cost_in_credits"`
	Length        string `json:"length"`
	Crew          string `json:"crew"`
	Passengers    string `json:"passengers"`
}

// TableName specifies the table name
func (Starship) TableName() string {
	return "starships"
}

func (s Starship) EntityID() uint   { return s.ID }
func (s Starship) EntityKind() Kind { return KindStarship }

func (s Starship) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":              s.ID,
		"name":            s.Name,
		"model":           s.Model,
		"manufacturer":    s.Manufacturer,
		"starship_class":  s.StarshipClass,
		"cost_in_credits": s.CostInCredits,
		"length":          s.Length,
		"crew":            s.Crew,
		"passengers":      s.Passengers,
	}
}
