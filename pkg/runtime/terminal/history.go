package terminal

import (
	"context"
	"io"

	"github.com/de-tools/ai-foundry/pkg/services/config"
	"github.com/de-tools/ai-foundry/pkg/store/history"
	"github.com/de-tools/ai-foundry/pkg/store/sqlite"
)

func openHistory(ctx context.Context, s *config.Settings) (history.Store, io.Closer, error) {
	if s.History.Path == "" {
		return nil, nil, nil
	}
	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: s.History.Path})
	if err != nil {
		return nil, nil, err
	}
	store, err := history.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}
