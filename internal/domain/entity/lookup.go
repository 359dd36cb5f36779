package entity

// Lookup is a reference-data row (countries, address types, ...).
type Lookup struct {
	LookupID    int64
	LookupType  string
	LookupValue string
}
