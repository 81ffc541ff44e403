package credentials

import (
	"context"
	"strings"
	"sync"

	"github.com/01moynul/taptosell-creatives/internal/ai"
	"github.com/01moynul/taptosell-creatives/internal/apperr"
)

// KeyStore keeps the Gemini key in memory. The UI submits a key, then the
// selection flow promotes it to the active one.
type KeyStore struct {
	mu      sync.RWMutex
	active  string
	pending string
}

// NewKeyStore seeds the active key, usually from GEMINI_API_KEY.
func NewKeyStore(initial string) *KeyStore {
	return &KeyStore{active: strings.TrimSpace(initial)}
}

// APIKey returns the active key; the gateway reads it on every call.
func (k *KeyStore) APIKey() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.active
}

// Submit stores key as the candidate for the next selection.
func (k *KeyStore) Submit(key string) {
	k.mu.Lock()
	k.pending = strings.TrimSpace(key)
	k.mu.Unlock()
}

func (k *KeyStore) HasSelectedKey(ctx context.Context) (bool, error) {
	return ai.IsUsableKey(k.APIKey()), nil
}

// OpenSelectKey promotes the submitted key.
func (k *KeyStore) OpenSelectKey(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pending == "" {
		return apperr.InvalidErr("Nenhuma chave de API foi informada.", map[string]string{"apiKey": "required"})
	}
	k.active, k.pending = k.pending, ""
	return nil
}

var (
	_ Host         = (*KeyStore)(nil)
	_ ai.KeySource = (*KeyStore)(nil)
)
