package application

import (
	"context"
	"time"

	"github.com/bnema/aminoacids/internal/amino"
	"github.com/bnema/aminoacids/internal/remote"
)

type AccountView struct {
	UID            string    `json:"uid"`
	Nickname       string    `json:"nickname"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	AminoID        string    `json:"amino_id"`
	Role           int64     `json:"role"`
	EmailActivated bool      `json:"email_activated"`
	PhoneActivated bool      `json:"phone_activated"`
	Created        time.Time `json:"created"`
	Icon           string    `json:"icon,omitempty"`
}

type CommunityView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Endpoint        string    `json:"endpoint"`
	Link            string    `json:"link"`
	Tagline         string    `json:"tagline,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	Aliases         []string  `json:"aliases,omitempty"`
	MemberCount     int64     `json:"member_count"`
	HeatLevel       float64   `json:"heat_level"`
	PrimaryLanguage string    `json:"primary_language"`
	Searchable      bool      `json:"searchable"`
	Created         time.Time `json:"created"`
	Icon            string    `json:"icon,omitempty"`
}

// CommunitySummary holds the fields present in community listings, so
// building one never triggers a fetch for a listed community.
type CommunitySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	MemberCount int64  `json:"member_count"`
}

type UserView struct {
	UID           string    `json:"uid"`
	Nickname      string    `json:"nickname"`
	AminoID       string    `json:"amino_id,omitempty"`
	Community     string    `json:"community,omitempty"`
	Level         int64     `json:"level"`
	Reputation    int64     `json:"reputation"`
	Role          int64     `json:"role"`
	PostCount     int64     `json:"post_count"`
	BlogCount     int64     `json:"blog_count"`
	CommentCount  int64     `json:"comment_count"`
	CheckInStreak int64     `json:"check_in_streak"`
	Created       time.Time `json:"created"`
	Icon          string    `json:"icon,omitempty"`
}

type UserSummary struct {
	UID        string `json:"uid"`
	Nickname   string `json:"nickname"`
	Level      int64  `json:"level"`
	Reputation int64  `json:"reputation"`
}

type BlogView struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	Likes    int64     `json:"likes"`
	Comments int64     `json:"comments"`
	Created  time.Time `json:"created"`
	Media    []string  `json:"media,omitempty"`
}

// fieldReader stops at the first failed read.
type fieldReader struct {
	ctx context.Context
	err error
}

func read[T any](r *fieldReader, get func(context.Context) (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}

	value, err := get(r.ctx)
	if err != nil {
		r.err = err
		return zero
	}
	return value
}

func mediaURL(r *fieldReader, get func(context.Context) (*remote.Media, error)) string {
	media := read(r, get)
	if media == nil {
		return ""
	}
	return media.URL()
}

func DescribeAccount(ctx context.Context, account *amino.Account) (AccountView, error) {
	r := &fieldReader{ctx: ctx}
	view := AccountView{
		UID:            read(r, account.UID),
		Nickname:       read(r, account.Nickname),
		Email:          read(r, account.Email),
		PhoneNumber:    read(r, account.PhoneNumber),
		AminoID:        read(r, account.AminoID),
		Role:           read(r, account.Role),
		EmailActivated: read(r, account.EmailActivated),
		PhoneActivated: read(r, account.PhoneActivated),
		Created:        read(r, account.Created),
		Icon:           mediaURL(r, account.Icon),
	}
	if r.err != nil {
		return AccountView{}, r.err
	}

	return view, nil
}

func DescribeCommunity(ctx context.Context, community *amino.Community) (CommunityView, error) {
	r := &fieldReader{ctx: ctx}
	view := CommunityView{
		ID:              community.ID(),
		Name:            read(r, community.Name),
		Endpoint:        read(r, community.Endpoint),
		Link:            read(r, community.Link),
		Tagline:         read(r, community.Tagline),
		Keywords:        read(r, community.Keywords),
		Aliases:         read(r, community.Aliases),
		MemberCount:     read(r, community.MemberCount),
		HeatLevel:       read(r, community.HeatLevel),
		PrimaryLanguage: read(r, community.PrimaryLanguage),
		Searchable:      read(r, community.Searchable),
		Created:         read(r, community.Created),
		Icon:            mediaURL(r, community.Icon),
	}
	if r.err != nil {
		return CommunityView{}, r.err
	}

	return view, nil
}

func SummarizeCommunity(ctx context.Context, community *amino.Community) (CommunitySummary, error) {
	r := &fieldReader{ctx: ctx}
	summary := CommunitySummary{
		ID:          community.ID(),
		Name:        read(r, community.Name),
		Endpoint:    read(r, community.Endpoint),
		MemberCount: read(r, community.MemberCount),
	}
	if r.err != nil {
		return CommunitySummary{}, r.err
	}

	return summary, nil
}

func DescribeUser(ctx context.Context, user *amino.User) (UserView, error) {
	r := &fieldReader{ctx: ctx}
	view := UserView{
		UID:           read(r, user.UID),
		Nickname:      read(r, user.Nickname),
		AminoID:       read(r, user.AminoID),
		Community:     user.Key().Scope,
		Level:         read(r, user.Level),
		Reputation:    read(r, user.Reputation),
		Role:          read(r, user.Role),
		PostCount:     read(r, user.PostCount),
		BlogCount:     read(r, user.BlogCount),
		CommentCount:  read(r, user.CommentCount),
		CheckInStreak: read(r, user.CheckInStreak),
		Created:       read(r, user.Created),
		Icon:          mediaURL(r, user.Icon),
	}
	if r.err != nil {
		return UserView{}, r.err
	}

	return view, nil
}

func SummarizeUser(ctx context.Context, user *amino.User) (UserSummary, error) {
	r := &fieldReader{ctx: ctx}
	summary := UserSummary{
		UID:        read(r, user.UID),
		Nickname:   read(r, user.Nickname),
		Level:      read(r, user.Level),
		Reputation: read(r, user.Reputation),
	}
	if r.err != nil {
		return UserSummary{}, r.err
	}

	return summary, nil
}

func DescribeBlog(ctx context.Context, blog *amino.Blog) (BlogView, error) {
	r := &fieldReader{ctx: ctx}
	view := BlogView{
		ID:       blog.Key().ID,
		Title:    read(r, blog.Title),
		Likes:    read(r, blog.LikesCount),
		Comments: read(r, blog.CommentsCount),
		Created:  read(r, blog.Created),
	}

	author := read(r, blog.Author)
	if author != nil {
		view.Author = read(r, author.Nickname)
	}

	for _, media := range read(r, blog.MediaList) {
		view.Media = append(view.Media, media.URL())
	}

	if r.err != nil {
		return BlogView{}, r.err
	}

	return view, nil
}

// ListCommunities drains up to limit communities from feed.
func ListCommunities(ctx context.Context, feed *remote.Feed[*amino.Community], limit int) ([]CommunitySummary, error) {
	return collect(ctx, feed, limit, SummarizeCommunity)
}

func ListUsers(ctx context.Context, feed *remote.Feed[*amino.User], limit int) ([]UserSummary, error) {
	return collect(ctx, feed, limit, SummarizeUser)
}

func ListBlogs(ctx context.Context, feed *remote.Feed[*amino.Blog], limit int) ([]BlogView, error) {
	return collect(ctx, feed, limit, DescribeBlog)
}

func collect[T, V any](ctx context.Context, feed *remote.Feed[T], limit int, describe func(context.Context, T) (V, error)) ([]V, error) {
	items, err := feed.Collect(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]V, 0, len(items))
	for _, item := range items {
		view, err := describe(ctx, item)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
