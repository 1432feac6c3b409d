package components

// ColumnType identifies the type of content in a list column
type ColumnType int

const (
	ColumnTypeBooks ColumnType = iota
	ColumnTypeChapters
	ColumnTypeTechniques
)

// EmptyMessage is shown when the server returned no items
func (t ColumnType) EmptyMessage() string {
	switch t {
	case ColumnTypeBooks:
		return "No fighting books available yet."
	case ColumnTypeChapters:
		return "No chapters available yet."
	case ColumnTypeTechniques:
		return "No techniques available yet."
	default:
		return "No items"
	}
}

// FailureMessage is shown when a load failed without a server message
func (t ColumnType) FailureMessage() string {
	switch t {
	case ColumnTypeBooks:
		return "Failed to load fighting books"
	case ColumnTypeChapters:
		return "Failed to load chapters"
	case ColumnTypeTechniques:
		return "Failed to load techniques"
	default:
		return "Failed to load"
	}
}
