package table

// MarshalJSON renders the missing-cell sentinel as JSON null.
func (NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
