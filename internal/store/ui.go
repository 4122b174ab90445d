package store

import "sync"

// UIStore holds transient presentation flags.
type UIStore struct {
	mu          sync.RWMutex
	isLoading   bool
	showSpinner bool
	siteLogo    string
}

func NewUIStore() *UIStore {
	return &UIStore{}
}

// SetLoading sets the loading flag and mirrors it onto the spinner.
func (s *UIStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = loading
	s.showSpinner = loading
}

// SetShowSpinner overrides the spinner independently of the loading flag.
func (s *UIStore) SetShowSpinner(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSpinner = show
}

// SetSiteLogo caches the branding asset URL served by the API.
func (s *UIStore) SetSiteLogo(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.siteLogo = url
}

func (s *UIStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *UIStore) ShowSpinner() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showSpinner
}

func (s *UIStore) SiteLogo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteLogo
}
