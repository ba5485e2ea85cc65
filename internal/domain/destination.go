package domain

type Destination struct {
	ID                string     `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Country           string     `db:"country" json:"country"`
	Description       string     `db:"description" json:"description"`
	ImageURL          string     `db:"image_url" json:"imageUrl"`
	Highlights        StringList `db:"highlights" json:"highlights"`
	PopularActivities StringList `db:"popular_activities" json:"popularActivities"`
	IsFeatured        Flag       `db:"is_featured" json:"isFeatured"`
}

type ActivityType struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Category    string `db:"category" json:"category"`
	Icon        string `db:"icon" json:"icon"`
	Description string `db:"description" json:"description"`
}
