package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/blogpost/blog"
)

func TestReduceContentDoesNotWriteInput(t *testing.T) {
	in := ContentState{Posts: seedPosts(3, "u-1"), Status: Succeeded}
	orig := append([]blog.Post(nil), in.Posts...)

	ReduceContent(in, Event{Op: OpUpdatePost, Phase: Fulfilled, Post: blog.Post{ID: 2, Title: "x"}})
	ReduceContent(in, Event{Op: OpDeletePost, Phase: Fulfilled, ID: 1})
	ReduceContent(in, Event{Op: OpCreatePost, Phase: Fulfilled, Post: blog.Post{ID: 9}})

	assert.Equal(t, orig, in.Posts)
}

func TestRequestedClearsError(t *testing.T) {
	s := ReduceSession(SessionState{}, Event{Op: OpLogin, Phase: Rejected, Err: &blog.BackendError{Message: "boom"}})
	require.Error(t, s.Err)

	s = ReduceSession(s, Event{Op: OpLogin, Phase: Requested})
	assert.Equal(t, Loading, s.Status)
	assert.NoError(t, s.Err)
}

func TestRejectedWithoutErrorStillCarriesOne(t *testing.T) {
	s := ReduceContent(ContentState{}, Event{Op: OpFetchPosts, Phase: Rejected})
	assert.Equal(t, Failed, s.Status)
	assert.Error(t, s.Err)
}

func TestUpdateKeepsAuthor(t *testing.T) {
	in := ContentState{Posts: []blog.Post{{ID: 1, AuthorID: "u-1", Title: "old"}}}
	out := ReduceContent(in, Event{Op: OpUpdatePost, Phase: Fulfilled, Post: blog.Post{ID: 1, AuthorID: "u-9", Title: "new"}})
	assert.Equal(t, "u-1", out.Posts[0].AuthorID)
	assert.Equal(t, "new", out.Posts[0].Title)
}

func TestLastCompletionWins(t *testing.T) {
	s := NewSessionStore()
	s.Dispatch(Event{Op: OpLogin, Phase: Requested})
	s.Dispatch(Event{Op: OpLogout, Phase: Requested})
	s.Dispatch(Event{Op: OpLogout, Phase: Fulfilled})
	got := s.Dispatch(Event{Op: OpLogin, Phase: Fulfilled, User: &blog.User{ID: "u-1"}})

	assert.Equal(t, Succeeded, got.Status)
	require.NotNil(t, got.User)
	assert.Equal(t, "u-1", got.User.ID)
}

func TestStoresIgnoreForeignOps(t *testing.T) {
	sess := SessionState{Status: Succeeded}
	assert.Equal(t, sess, ReduceSession(sess, Event{Op: OpFetchPosts, Phase: Requested}))

	content := ContentState{Status: Succeeded}
	assert.Equal(t, content, ReduceContent(content, Event{Op: OpLogin, Phase: Requested}))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}
