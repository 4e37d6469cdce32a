package uistate

import (
	"encoding/json"
	"errors"
	"math"
)

// Keys under which state is persisted.
const (
	KeyTheme    = "theme"
	KeyPosition = "togglePosition"
)

// Storage is a persistent string key/value store, such as the browser's
// localStorage. Any method may fail when storage is blocked.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
}

// MemoryStorage keeps values for the lifetime of the process.
// It is used when persistent storage is unavailable.
type MemoryStorage struct {
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

var errInvalidPosition = errors.New("invalid position")

// storedPosition mirrors the persisted {x, y} pair; both fields are required.
type storedPosition struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func decodePosition(raw string) (Position, error) {
	var sp storedPosition
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return Position{}, err
	}
	if sp.X == nil || sp.Y == nil {
		return Position{}, errInvalidPosition
	}
	if math.IsNaN(*sp.X) || math.IsInf(*sp.X, 0) || math.IsNaN(*sp.Y) || math.IsInf(*sp.Y, 0) {
		return Position{}, errInvalidPosition
	}
	return Position{X: *sp.X, Y: *sp.Y}, nil
}

func encodePosition(p Position) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
