package amino

import (
	"context"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/remote"
	"github.com/samber/lo"
)

type Blog struct {
	*remote.Entity
}

func NewBlog(client *remote.Client, id, ndc string) *Blog {
	return newBlog(client, id, ndc, nil)
}

func SeededBlog(client *remote.Client, ndc string, item remote.Snapshot) *Blog {
	return newBlog(client, item.String("blogId", ""), ndc, item)
}

func newBlog(client *remote.Client, id, ndc string, seed remote.Snapshot) *Blog {
	load := remote.ObjectLoader(client, remote.Request{Path: localPath(ndc, "blog/"+id)}, "blog")

	return &Blog{Entity: remote.NewEntity(client, domain.EntityKey{ID: id, Scope: ndc}, load, seed)}
}

func (b *Blog) Refresh() *Blog {
	b.Entity.Refresh()
	return b
}

func (b *Blog) Title(ctx context.Context) (string, error) {
	return b.String(ctx, "title", "")
}

func (b *Blog) Content(ctx context.Context) (string, error) {
	return b.String(ctx, "content", "")
}

// Author returns the author's community profile, seeded with the nested
// author object of the blog.
func (b *Blog) Author(ctx context.Context) (*User, error) {
	author, err := b.Object(ctx, "author")
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, nil
	}

	return SeededUser(b.Client(), b.Key().Scope, author), nil
}

func (b *Blog) LikesCount(ctx context.Context) (int64, error) {
	return b.Int(ctx, "votesCount", 0)
}

func (b *Blog) CommentsCount(ctx context.Context) (int64, error) {
	return b.Int(ctx, "commentsCount", 0)
}

func (b *Blog) Created(ctx context.Context) (time.Time, error) {
	return b.Time(ctx, "createdTime")
}

// MediaList returns the attached media. Entries are [type, url, caption, ...]
// tuples; entries without a url are skipped.
func (b *Blog) MediaList(ctx context.Context) ([]*remote.Media, error) {
	entries, err := b.List(ctx, "mediaList")
	if err != nil {
		return nil, err
	}

	client := b.Client()
	return lo.FilterMap(entries, func(entry any, _ int) (*remote.Media, bool) {
		tuple, ok := entry.([]any)
		if !ok || len(tuple) < 2 {
			return nil, false
		}
		rawURL, ok := tuple[1].(string)
		if !ok || rawURL == "" {
			return nil, false
		}
		return client.Media(rawURL), true
	}), nil
}
