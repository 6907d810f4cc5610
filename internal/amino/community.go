package amino

import (
	"context"
	"net/url"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/remote"
)

type Community struct {
	*remote.Entity
}

func NewCommunity(client *remote.Client, id string) *Community {
	return newCommunity(client, id, nil)
}

// SeededCommunity builds a community from a listing entry. Fields missing
// from the entry are fetched on first read.
func SeededCommunity(client *remote.Client, item remote.Snapshot) *Community {
	return newCommunity(client, item.String("ndcId", ""), item)
}

func newCommunity(client *remote.Client, id string, seed remote.Snapshot) *Community {
	load := remote.ObjectLoader(client, remote.Request{Path: globalCommunityPath(id, "community/info")}, "community")

	return &Community{Entity: remote.NewEntity(client, domain.EntityKey{ID: id}, load, seed)}
}

func (c *Community) Refresh() *Community {
	c.Entity.Refresh()
	return c
}

func (c *Community) ID() string {
	return c.Key().ID
}

func (c *Community) Name(ctx context.Context) (string, error) {
	return c.String(ctx, "name", "")
}

func (c *Community) Endpoint(ctx context.Context) (string, error) {
	return c.String(ctx, "endpoint", "")
}

func (c *Community) Link(ctx context.Context) (string, error) {
	return c.String(ctx, "link", "")
}

func (c *Community) Tagline(ctx context.Context) (string, error) {
	return c.String(ctx, "tagline", "")
}

func (c *Community) Keywords(ctx context.Context) ([]string, error) {
	raw, err := c.String(ctx, "keywords", "")
	if err != nil {
		return nil, err
	}

	return splitList(raw), nil
}

// Aliases reads extensions.communityNameAliases.
func (c *Community) Aliases(ctx context.Context) ([]string, error) {
	extensions, err := c.Object(ctx, "extensions")
	if err != nil {
		return nil, err
	}

	return splitList(extensions.String("communityNameAliases", "")), nil
}

func (c *Community) MemberCount(ctx context.Context) (int64, error) {
	return c.Int(ctx, "membersCount", 0)
}

func (c *Community) HeatLevel(ctx context.Context) (float64, error) {
	return c.Float(ctx, "communityHeat", 0)
}

func (c *Community) PrimaryLanguage(ctx context.Context) (string, error) {
	return c.String(ctx, "primaryLanguage", "")
}

func (c *Community) JoinType(ctx context.Context) (int64, error) {
	return c.Int(ctx, "joinType", 0)
}

func (c *Community) Searchable(ctx context.Context) (bool, error) {
	return c.Bool(ctx, "searchable", false)
}

func (c *Community) Status(ctx context.Context) (int64, error) {
	return c.Int(ctx, "status", 0)
}

func (c *Community) Created(ctx context.Context) (time.Time, error) {
	return c.Time(ctx, "createdTime")
}

func (c *Community) LastModified(ctx context.Context) (time.Time, error) {
	return c.Time(ctx, "modifiedTime")
}

func (c *Community) Icon(ctx context.Context) (*remote.Media, error) {
	return c.Media(ctx, "icon")
}

func (c *Community) Kindred(size int) *remote.Feed[*Community] {
	client := c.Client()
	pager := client.Pager(remote.Request{Path: globalCommunityPath(c.ID(), "community/kindred")}, "communityList")

	return remote.NewFeed(size, pager, func(item remote.Snapshot) *Community {
		return SeededCommunity(client, item)
	})
}

// Members lists the most recently active members.
func (c *Community) Members(size int) *remote.Feed[*User] {
	return c.users(query("type", "recent"), size)
}

// SearchUsers lists members matching q; an empty q lists everyone.
func (c *Community) SearchUsers(q string, size int) *remote.Feed[*User] {
	return c.users(query("type", "all", "q", q), size)
}

func (c *Community) users(params url.Values, size int) *remote.Feed[*User] {
	client := c.Client()
	ndc := c.ID()
	pager := client.Pager(remote.Request{Path: localPath(ndc, "user-profile"), Query: params}, "userProfileList")

	return remote.NewFeed(size, pager, func(item remote.Snapshot) *User {
		return SeededUser(client, ndc, item)
	})
}
