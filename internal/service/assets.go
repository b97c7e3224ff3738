package service

import (
	"context"
	"errors"

	"adoptnest/internal/assetstore"

	"go.uber.org/zap"
)

// uploadFailure classifies an asset store upload error.
func uploadFailure(err error) error {
	if errors.Is(err, assetstore.ErrUnsupportedContent) {
		return ErrUnsupportedMediaType.withCause(err)
	}
	return ErrAssetUploadFailed.withCause(err)
}

// releaseAssets deletes assets that are no longer referenced. It outlives
// request cancellation and never fails the caller.
func releaseAssets(ctx context.Context, store assetstore.Store, logger *zap.Logger, remoteIDs ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, id := range remoteIDs {
		if id == "" {
			continue
		}
		if err := store.Delete(ctx, id); err != nil {
			logger.Error("Failed to release asset",
				zap.String("remote_id", id),
				zap.Error(err),
			)
		}
	}
}
