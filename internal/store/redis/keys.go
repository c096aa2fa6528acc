package redis

const (
	// KeyBoard is the fixed key the whole board document lives under.
	KeyBoard = "kalendarz:board"
)

// BoardKey returns the Redis key for the board document.
func BoardKey() string {
	return KeyBoard
}
