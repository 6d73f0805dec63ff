package model

// Row is one record of tabular data. ID is the row's position in its store
// (assigned at append time) and is what index posting lists refer to.
// Fields maps column name -> raw cell value; all values are kept as strings,
// numeric columns included, since index tokens are strings.
type Row struct {
	ID     uint32            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// Field returns the value of the named column if present.
func (r Row) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}
