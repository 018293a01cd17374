package order

// Stats aggregates archived orders over a few fixed windows.
type Stats struct {
	Total int `db:"total"`
	Today int `db:"today"`
	Week  int `db:"week"`
	Month int `db:"month"`
	Coils int `db:"coils"`
}
