package amino

import (
	"context"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/remote"
)

// Account is the authenticated user's global account.
type Account struct {
	*remote.Entity
}

func NewAccount(client *remote.Client) *Account {
	key := domain.EntityKey{ID: client.Session().Credentials().AccountID}
	load := remote.ObjectLoader(client, remote.Request{Path: "/g/s/account", Auth: true}, "account")

	return &Account{Entity: remote.NewEntity(client, key, load, nil)}
}

// Refresh marks the account stale; the next read fetches it again.
func (a *Account) Refresh() *Account {
	a.Entity.Refresh()
	return a
}

func (a *Account) UID(ctx context.Context) (string, error) {
	return a.String(ctx, "uid", "")
}

func (a *Account) Nickname(ctx context.Context) (string, error) {
	return a.String(ctx, "nickname", "")
}

func (a *Account) Email(ctx context.Context) (string, error) {
	return a.String(ctx, "email", "")
}

func (a *Account) PhoneNumber(ctx context.Context) (string, error) {
	return a.String(ctx, "phoneNumber", "")
}

func (a *Account) AminoID(ctx context.Context) (string, error) {
	return a.String(ctx, "aminoId", "")
}

func (a *Account) Role(ctx context.Context) (int64, error) {
	return a.Int(ctx, "role", 0)
}

func (a *Account) Status(ctx context.Context) (int64, error) {
	return a.Int(ctx, "status", 0)
}

func (a *Account) Gender(ctx context.Context) (int64, error) {
	return a.Int(ctx, "gender", 0)
}

func (a *Account) EmailActivated(ctx context.Context) (bool, error) {
	return a.Bool(ctx, "emailActivation", false)
}

func (a *Account) PhoneActivated(ctx context.Context) (bool, error) {
	return a.Bool(ctx, "phoneNumberActivation", false)
}

func (a *Account) Birthdate(ctx context.Context) (time.Time, error) {
	return a.Time(ctx, "dateOfBirth")
}

func (a *Account) Created(ctx context.Context) (time.Time, error) {
	return a.Time(ctx, "createdTime")
}

func (a *Account) LastModified(ctx context.Context) (time.Time, error) {
	return a.Time(ctx, "modifiedTime")
}

func (a *Account) Icon(ctx context.Context) (*remote.Media, error) {
	return a.Media(ctx, "icon")
}

// AmplitudeAppID is set only when analytics are enabled on the account.
func (a *Account) AmplitudeAppID(ctx context.Context) (string, error) {
	settings, err := a.Object(ctx, "advancedSettings")
	if err != nil {
		return "", err
	}

	return settings.String("amplitudeAppId", ""), nil
}

// JoinedCommunities lists the communities the account is a member of. Each
// community is seeded with its listing entry.
func (a *Account) JoinedCommunities(size int) *remote.Feed[*Community] {
	client := a.Client()
	pager := client.Pager(remote.Request{Path: "/g/s/community/joined", Auth: true}, "communityList")

	return remote.NewFeed(size, pager, func(item remote.Snapshot) *Community {
		return SeededCommunity(client, item)
	})
}
