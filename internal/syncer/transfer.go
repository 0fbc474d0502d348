package syncer

import (
	"context"
	"encoding/json"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/store/local"
)

// Export serializes the reconciled config as indented JSON.
func (c *Controller) Export(ctx context.Context) ([]byte, error) {
	cfg, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// Import replaces the whole config with the given payload. The payload
// goes through the same validation and schema migration as stored data,
// then through the normal save path, so a signed-in user's import
// propagates to the remote document.
func (c *Controller) Import(ctx context.Context, payload []byte) (*domain.Config, error) {
	cfg, err := local.ParseImport(payload)
	if err != nil {
		return nil, err
	}
	return c.Save(ctx, cfg)
}
