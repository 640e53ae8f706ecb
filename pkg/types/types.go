package types

// Student is a single roster entry. ID is assigned by the roster store and
// equals the record's 1-based insertion rank.
type Student struct {
	ID               int    `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	FavoriteLanguage string `json:"favorite_language"`
}

// Classroom is one row of the seeded reference table. Immutable after seeding.
type Classroom struct {
	Name     string `json:"name" yaml:"name"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}
