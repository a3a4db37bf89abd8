package feed

import (
	"reflect"
	"testing"
	"time"

	"picshare/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

func strPtr(s string) *string { return &s }

// postRow builds a join row with all optional branches nil.
func postRow(postID, userID string, date time.Time) model.PostRow {
	return model.PostRow{
		PostID:     postID,
		UserID:     userID,
		Username:   "user-" + userID,
		UserAvatar: "avatar-" + userID,
		Date:       date,
	}
}

func withPicture(r model.PostRow, url string, order int) model.PostRow {
	r.Picture = &model.Picture{URL: url, Order: order}
	return r
}

func withComment(r model.PostRow, id, content string) model.PostRow {
	r.Comment = &model.Comment{ID: id, UserID: "commenter", Content: content}
	return r
}

func withLike(r model.PostRow, userID string) model.PostRow {
	r.LikeUserID = &userID
	return r
}

func pictureURLs(pics []model.Picture) []string {
	urls := make([]string, 0, len(pics))
	for _, p := range pics {
		urls = append(urls, p.URL)
	}
	return urls
}

// =============================================================================
// POST ASSEMBLY
// =============================================================================

// The join emits one row per picture×comment×like combination. A post with
// 3 pictures, 2 comments and 2 likes arrives as 12 rows and must fold back
// into exactly one aggregate with 3/2/2 children.
func TestAssemblePosts_CrossProductFold(t *testing.T) {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pictures := []model.Picture{
		{URL: "p1.jpg", Order: 1},
		{URL: "p2.jpg", Order: 2},
		{URL: "p3.jpg", Order: 3},
	}
	commentIDs := []string{"c1", "c2"}
	likers := []string{"alice", "bob"}

	var rows []model.PostRow
	for _, pic := range pictures {
		for _, cid := range commentIDs {
			for _, liker := range likers {
				row := postRow("post1", "author", date)
				row.Picture = &model.Picture{URL: pic.URL, Order: pic.Order}
				row.Comment = &model.Comment{ID: cid, Content: "hi"}
				row.LikeUserID = &liker
				rows = append(rows, row)
			}
		}
	}
	if len(rows) != 12 {
		t.Fatalf("test setup: expected 12 rows, got %d", len(rows))
	}

	posts := AssemblePosts(rows)

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	post := posts[0]
	if len(post.Pictures) != 3 {
		t.Errorf("pictures = %d, want 3", len(post.Pictures))
	}
	if len(post.Comments) != 2 {
		t.Errorf("comments = %d, want 2", len(post.Comments))
	}
	if len(post.Likes) != 2 {
		t.Errorf("likes = %d, want 2", len(post.Likes))
	}
}

// The legacy single-image URL is seeded at order 0 and must sort ahead of
// joined pictures, whose orders start at 1 — even when rows arrive with
// picture orders interleaved.
func TestAssemblePosts_LegacyMediaFirst(t *testing.T) {
	date := time.Now()

	r1 := postRow("post1", "author", date)
	r1.MediaURL = strPtr("legacy.jpg")
	r1.Picture = &model.Picture{URL: "second.jpg", Order: 2}

	r2 := postRow("post1", "author", date)
	r2.MediaURL = strPtr("legacy.jpg")
	r2.Picture = &model.Picture{URL: "first.jpg", Order: 1}

	posts := AssemblePosts([]model.PostRow{r1, r2})

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}

	got := pictureURLs(posts[0].Pictures)
	want := []string{"legacy.jpg", "first.jpg", "second.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("picture order = %v, want %v", got, want)
	}
}

// Posts keep first-seen order: the query sorts by date descending and the
// fold must not reorder.
func TestAssemblePosts_PreservesInputOrder(t *testing.T) {
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []model.PostRow{
		postRow("post-new", "a", newer),
		postRow("post-old", "b", older),
		// a second row for the newer post arriving after the older one
		// must not move it
		withLike(postRow("post-new", "a", newer), "carol"),
	}

	posts := AssemblePosts(rows)

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "post-new" || posts[1].ID != "post-old" {
		t.Errorf("post order = [%s %s], want [post-new post-old]", posts[0].ID, posts[1].ID)
	}
	if len(posts[0].Likes) != 1 {
		t.Errorf("late row's like was not folded into the first aggregate")
	}
}

func TestAssemblePosts_DedupByIdentity(t *testing.T) {
	date := time.Now()

	rows := []model.PostRow{
		withPicture(postRow("p", "a", date), "pic.jpg", 1),
		withPicture(postRow("p", "a", date), "pic.jpg", 1),
		withComment(postRow("p", "a", date), "c1", "same comment twice"),
		withComment(postRow("p", "a", date), "c1", "same comment twice"),
		withLike(postRow("p", "a", date), "alice"),
		withLike(postRow("p", "a", date), "alice"),
	}

	posts := AssemblePosts(rows)

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if n := len(posts[0].Pictures); n != 1 {
		t.Errorf("pictures = %d, want 1", n)
	}
	if n := len(posts[0].Comments); n != 1 {
		t.Errorf("comments = %d, want 1", n)
	}
	if n := len(posts[0].Likes); n != 1 {
		t.Errorf("likes = %d, want 1", n)
	}
}

// A post with no children still produces an aggregate, and its child
// collections serialize as [] rather than null.
func TestAssemblePosts_BarePost(t *testing.T) {
	rows := []model.PostRow{postRow("lonely", "a", time.Now())}

	posts := AssemblePosts(rows)

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	p := posts[0]
	if p.Pictures == nil || p.Comments == nil || p.Likes == nil {
		t.Error("child collections must be non-nil empty slices")
	}
	if len(p.Pictures) != 0 || len(p.Comments) != 0 || len(p.Likes) != 0 {
		t.Error("bare post must have no children")
	}
}

func TestAssemblePosts_EmptyInput(t *testing.T) {
	posts := AssemblePosts(nil)
	if posts == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(posts) != 0 {
		t.Fatalf("expected 0 posts, got %d", len(posts))
	}
}

// =============================================================================
// STORY ASSEMBLY
// =============================================================================

func storyRow(storyID, userID, username string, date time.Time) model.StoryRow {
	return model.StoryRow{
		StoryID:        storyID,
		UserID:         userID,
		Username:       username,
		UserAvatar:     "avatar-" + userID,
		Date:           date,
		Type:           model.StoryTypeImage,
		ExpirationDate: date.Add(model.StoryTTL),
	}
}

func TestAssembleStories_GroupsByAuthor(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Query order: authors by username asc, stories by date desc.
	rows := []model.StoryRow{
		storyRow("s2", "u1", "alice", base.Add(2*time.Hour)),
		storyRow("s1", "u1", "alice", base),
		storyRow("s3", "u2", "bob", base.Add(time.Hour)),
	}

	authors := AssembleStories(rows)

	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	if authors[0].Username != "alice" || authors[1].Username != "bob" {
		t.Errorf("author order = [%s %s], want [alice bob]", authors[0].Username, authors[1].Username)
	}
	if len(authors[0].Stories) != 2 {
		t.Errorf("alice stories = %d, want 2", len(authors[0].Stories))
	}
	if authors[0].Stories[0].ID != "s2" || authors[0].Stories[1].ID != "s1" {
		t.Errorf("alice story order = [%s %s], want [s2 s1]", authors[0].Stories[0].ID, authors[0].Stories[1].ID)
	}
	if len(authors[1].Stories) != 1 || authors[1].Stories[0].ID != "s3" {
		t.Errorf("bob stories wrong: %+v", authors[1].Stories)
	}
}

func TestAssembleStories_EmptyInput(t *testing.T) {
	authors := AssembleStories(nil)
	if authors == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(authors) != 0 {
		t.Fatalf("expected 0 authors, got %d", len(authors))
	}
}
