package usecase

import (
	"context"

	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

// Theme resolves and toggles the persisted color scheme
type Theme struct{}

// NewTheme creates a Theme use case
func NewTheme() *Theme {
	return &Theme{}
}

// Init returns the saved theme, or the system preference when nothing
// valid has been saved. Store errors fall through to the system preference.
func (uc *Theme) Init(ctx context.Context, prefs interfaces.KVStore, systemPrefersDark bool) model.Theme {
	if prefs != nil {
		saved, ok, err := prefs.Get(ctx, model.ThemeKey)
		if err != nil {
			logging.From(ctx).Debug("Failed to read theme preference", "error", err)
		} else if ok {
			if theme, valid := model.ParseTheme(saved); valid {
				return theme
			}
		}
	}

	if systemPrefersDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// Toggle flips current and persists the result. The flipped theme is
// returned even when persisting fails.
func (uc *Theme) Toggle(ctx context.Context, prefs interfaces.KVStore, current model.Theme) model.Theme {
	next := current.Flip()
	if prefs == nil {
		return next
	}
	if err := prefs.Set(ctx, model.ThemeKey, string(next)); err != nil {
		logging.From(ctx).Warn("Failed to persist theme preference", "error", err, "theme", next)
	}
	return next
}
