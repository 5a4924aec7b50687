package chat

// Reply is what the transport renders back to the user. The core never
// talks to a chat platform directly; it hands one of these back.
type Reply struct {
	Text string
	// Fields are optional structured sections the transport may render
	// as an embed, a table, or appended text.
	Fields []Field
	// Private marks replies only the invoking user should see.
	Private bool
}

// Field is one named section of a reply.
type Field struct {
	Name  string
	Value string
}
