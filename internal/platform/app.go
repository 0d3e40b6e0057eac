package platform

import (
	"context"

	"github.com/jotkit/jot/pkg/core"
	"github.com/jotkit/jot/pkg/typed"
)

// Onboarding-completion flag. It lives next to the notes snapshot but
// is owned by the application layer, not the store.

func onboardedFlag(storage core.Storage) *typed.Value[bool] {
	return typed.NewValue[bool](storage, core.OnboardedKey)
}

// Onboarded reports whether the onboarding flag is set. Storage errors
// read as "not onboarded"; the flag is a hint, not state worth failing
// over.
func Onboarded(ctx context.Context, storage core.Storage) bool {
	done, ok, err := onboardedFlag(storage).Get(ctx)
	return err == nil && ok && done
}

// SetOnboarded marks onboarding as completed.
func SetOnboarded(ctx context.Context, storage core.Storage) error {
	return onboardedFlag(storage).Set(ctx, true)
}

// ResetOnboarding removes the flag; part of the full app reset.
func ResetOnboarding(ctx context.Context, storage core.Storage) error {
	return onboardedFlag(storage).Remove(ctx)
}
