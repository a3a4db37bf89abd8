// Package feed folds flat relational join rows into nested, client-ready
// aggregates. The fold is pure and holds no resources, so it is safe to run
// concurrently across requests.
package feed

import (
	"sort"

	"picshare/internal/model"
)

// AssemblePosts reduces the posts×pictures×comments×likes cross-product into
// one aggregate per distinct post.
//
// Post order is first-seen input order: the caller's query already sorts by
// date descending, so the fold must not re-sort posts. Children are
// deduplicated by their own identity (picture URL, comment id, liker id)
// because the join emits one row per picture×comment×like combination.
// Pictures are re-sorted by upload order at the end, since duplicate rows
// interleave picture order non-monotonically across comment/like branches.
func AssemblePosts(rows []model.PostRow) []model.PostAggregate {
	posts := make([]model.PostAggregate, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.PostID]
		if !ok {
			agg := model.PostAggregate{
				ID:         row.PostID,
				UserID:     row.UserID,
				Username:   row.Username,
				UserAvatar: row.UserAvatar,
				Message:    row.Message,
				Date:       row.Date,
				Pictures:   make([]model.Picture, 0),
				Comments:   make([]model.Comment, 0),
				Likes:      make([]string, 0),
			}
			// The legacy single-image field occupies order 0, ahead of
			// any joined pictures (whose orders start at 1).
			if row.MediaURL != nil {
				agg.Pictures = append(agg.Pictures, model.Picture{URL: *row.MediaURL, Order: 0})
			}
			i = len(posts)
			index[row.PostID] = i
			posts = append(posts, agg)
		}

		post := &posts[i]

		if row.Picture != nil && !hasPicture(post.Pictures, row.Picture.URL) {
			post.Pictures = append(post.Pictures, *row.Picture)
		}
		if row.Comment != nil && !hasComment(post.Comments, row.Comment.ID) {
			post.Comments = append(post.Comments, *row.Comment)
		}
		if row.LikeUserID != nil && !hasLike(post.Likes, *row.LikeUserID) {
			post.Likes = append(post.Likes, *row.LikeUserID)
		}
	}

	for i := range posts {
		pics := posts[i].Pictures
		sort.SliceStable(pics, func(a, b int) bool { return pics[a].Order < pics[b].Order })
	}

	return posts
}

// AssembleStories groups story rows by author. Each story carries at most
// one media attachment, so every row is a distinct story and no child
// dedup is needed. Author order is first-seen input order (the query sorts
// by username ascending, stories by date descending).
func AssembleStories(rows []model.StoryRow) []model.AuthorStories {
	authors := make([]model.AuthorStories, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(authors)
			index[row.UserID] = i
			authors = append(authors, model.AuthorStories{
				UserID:     row.UserID,
				Username:   row.Username,
				UserAvatar: row.UserAvatar,
				Stories:    make([]model.Story, 0),
			})
		}

		authors[i].Stories = append(authors[i].Stories, model.Story{
			ID:             row.StoryID,
			UserID:         row.UserID,
			Date:           row.Date,
			Type:           row.Type,
			ExpirationDate: row.ExpirationDate,
			MediaURL:       row.MediaURL,
		})
	}

	return authors
}

func hasPicture(pics []model.Picture, url string) bool {
	for _, p := range pics {
		if p.URL == url {
			return true
		}
	}
	return false
}

func hasComment(comments []model.Comment, id string) bool {
	for _, c := range comments {
		if c.ID == id {
			return true
		}
	}
	return false
}

func hasLike(likes []string, userID string) bool {
	for _, id := range likes {
		if id == userID {
			return true
		}
	}
	return false
}
