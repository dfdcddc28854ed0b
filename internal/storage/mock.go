package storage

// MockStorage records the stored values without serializing them.
type MockStorage struct {
	Elements map[Key]interface{}
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key]interface{})}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.Elements[k] = value
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	return nil
}
