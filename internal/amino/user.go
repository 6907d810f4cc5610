package amino

import (
	"context"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/remote"
)

// User is a profile, either global (empty ndc) or local to a community.
type User struct {
	*remote.Entity
}

func NewUser(client *remote.Client, id, ndc string) *User {
	return newUser(client, id, ndc, nil)
}

// SeededUser builds a community-local profile from a listing entry.
func SeededUser(client *remote.Client, ndc string, item remote.Snapshot) *User {
	return newUser(client, item.String("uid", ""), ndc, item)
}

func newUser(client *remote.Client, id, ndc string, seed remote.Snapshot) *User {
	path := "/g/s/user-profile/" + id
	if scoped(ndc) {
		path = localPath(ndc, "user-profile/"+id)
	} else {
		ndc = ""
	}

	load := remote.ObjectLoader(client, remote.Request{Path: path}, "userProfile")
	key := domain.EntityKey{ID: id, Scope: ndc}

	return &User{Entity: remote.NewEntity(client, key, load, seed)}
}

func (u *User) Refresh() *User {
	u.Entity.Refresh()
	return u
}

func (u *User) UID(ctx context.Context) (string, error) {
	return u.String(ctx, "uid", u.Key().ID)
}

func (u *User) Nickname(ctx context.Context) (string, error) {
	return u.String(ctx, "nickname", "")
}

func (u *User) AminoID(ctx context.Context) (string, error) {
	return u.String(ctx, "aminoId", "")
}

func (u *User) Level(ctx context.Context) (int64, error) {
	return u.Int(ctx, "level", 0)
}

func (u *User) Reputation(ctx context.Context) (int64, error) {
	return u.Int(ctx, "reputation", 0)
}

func (u *User) Role(ctx context.Context) (int64, error) {
	return u.Int(ctx, "role", 0)
}

func (u *User) CommentCount(ctx context.Context) (int64, error) {
	return u.Int(ctx, "commentsCount", 0)
}

func (u *User) PostCount(ctx context.Context) (int64, error) {
	return u.Int(ctx, "postsCount", 0)
}

func (u *User) BlogCount(ctx context.Context) (int64, error) {
	return u.Int(ctx, "blogsCount", 0)
}

func (u *User) CheckInStreak(ctx context.Context) (int64, error) {
	return u.Int(ctx, "consecutiveCheckInDays", 0)
}

func (u *User) Created(ctx context.Context) (time.Time, error) {
	return u.Time(ctx, "createdTime")
}

func (u *User) LastModified(ctx context.Context) (time.Time, error) {
	return u.Time(ctx, "modifiedTime")
}

func (u *User) Icon(ctx context.Context) (*remote.Media, error) {
	return u.Media(ctx, "icon")
}

// Community rebuilds the profile's community from its ndcId. It returns nil
// for global profiles.
func (u *User) Community(ctx context.Context) (*Community, error) {
	ndc, err := u.String(ctx, "ndcId", u.Key().Scope)
	if err != nil {
		return nil, err
	}
	if !scoped(ndc) {
		return nil, nil
	}

	return NewCommunity(u.Client(), ndc), nil
}

// Blogs lists the blogs the user posted in their community. Global profiles
// have no blogs.
func (u *User) Blogs(size int) *remote.Feed[*Blog] {
	client := u.Client()
	ndc := u.Key().Scope
	if !scoped(ndc) {
		return remote.NewFeed(size, func(context.Context, int, int) ([]remote.Snapshot, error) {
			return nil, nil
		}, func(item remote.Snapshot) *Blog {
			return SeededBlog(client, ndc, item)
		})
	}

	req := remote.Request{Path: localPath(ndc, "blog"), Query: query("type", "user", "q", u.Key().ID)}
	return remote.NewFeed(size, client.Pager(req, "blogList"), func(item remote.Snapshot) *Blog {
		return SeededBlog(client, ndc, item)
	})
}
