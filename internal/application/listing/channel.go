package listing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoDraft is returned by Read when the channel holds nothing for the user.
var ErrNoDraft = errors.New("No draft in progress")

// DraftChannel hands a submitted draft from the compose step to the preview
// step. Write is last-write-wins; Read is non-destructive so a page refresh
// on preview does not lose the draft; Clear empties the slot.
type DraftChannel interface {
	Write(ctx context.Context, userID string, draft EncodedDraft) error
	Read(ctx context.Context, userID string) (EncodedDraft, error)
	Clear(ctx context.Context, userID string) error
}

// RedisDraftChannel stores one encoded draft per user under "draft:<userID>".
type RedisDraftChannel struct {
	RDB *redis.Client
	TTL time.Duration // zero means the draft never expires
}

const draftKeyPrefix = "draft:"

func (ch *RedisDraftChannel) Write(ctx context.Context, userID string, draft EncodedDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return ch.RDB.Set(ctx, draftKeyPrefix+userID, b, ch.TTL).Err()
}

func (ch *RedisDraftChannel) Read(ctx context.Context, userID string) (EncodedDraft, error) {
	b, err := ch.RDB.Get(ctx, draftKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return EncodedDraft{}, ErrNoDraft
	}
	if err != nil {
		return EncodedDraft{}, err
	}
	var draft EncodedDraft
	if err := json.Unmarshal(b, &draft); err != nil {
		return EncodedDraft{}, err
	}
	return draft, nil
}

func (ch *RedisDraftChannel) Clear(ctx context.Context, userID string) error {
	return ch.RDB.Del(ctx, draftKeyPrefix+userID).Err()
}
