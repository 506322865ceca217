package entities

// Label - метка, привязанная к библиотеке.
type Label struct {
	ID        int64  `json:"id"`
	LibraryID int64  `json:"library_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
}
