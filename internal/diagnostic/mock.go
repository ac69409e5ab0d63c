package diagnostic

import "context"

// MockClient permite tests sin llamar a la API real.
type MockClient struct {
	Response   []byte
	Err        error
	Calls      int
	LastPhotos PhotoURLs
	LastLocale string
}

func (m *MockClient) Analyze(_ context.Context, photos PhotoURLs, locale string) ([]byte, error) {
	m.Calls++
	m.LastPhotos = photos
	m.LastLocale = locale
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}
