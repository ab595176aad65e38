package form

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"infinitech-web/model"
	"sync"
	"testing"
	"time"
)

type committed struct {
	mu      sync.Mutex
	entries []model.SocialMedia
}

func (c *committed) add(entry model.SocialMedia) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

func (c *committed) list() []model.SocialMedia {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.SocialMedia(nil), c.entries...)
}

func TestSocialDraftCommitsAfterDelay(t *testing.T) {
	var c committed
	d := NewSocialDraft(20*time.Millisecond, c.add)

	d.SetPlatform("Facebook")
	d.SetURL("fb.com/jane")

	assert.Eventually(t, func() bool { return len(c.list()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, model.SocialMedia{Platform: "Facebook", Url: "fb.com/jane"}, c.list()[0])
	assert.Equal(t, model.SocialMedia{}, d.Pending())
}

func TestSocialDraftIncompleteNeverCommits(t *testing.T) {
	var c committed
	d := NewSocialDraft(10*time.Millisecond, c.add)

	d.SetPlatform("Facebook")
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, c.list())
	assert.Equal(t, model.SocialMedia{Platform: "Facebook"}, d.Pending())
}

func TestSocialDraftEditRestartsWait(t *testing.T) {
	var c committed
	d := NewSocialDraft(60*time.Millisecond, c.add)

	d.SetPlatform("Instagram")
	d.SetURL("ig.com/j")
	time.Sleep(30 * time.Millisecond)
	d.SetURL("ig.com/jane")

	assert.Eventually(t, func() bool { return len(c.list()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	entries := c.list()
	require.Len(t, entries, 1)
	assert.Equal(t, "ig.com/jane", entries[0].Url)
}

func TestSocialDraftStop(t *testing.T) {
	var c committed
	d := NewSocialDraft(20*time.Millisecond, c.add)

	d.SetPlatform("TikTok")
	d.SetURL("tiktok.com/@jane")
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, c.list())
	assert.Equal(t, model.SocialMedia{Platform: "TikTok", Url: "tiktok.com/@jane"}, d.Pending())
}

func TestSocialDraftAdd(t *testing.T) {
	var c committed
	d := NewSocialDraft(time.Hour, c.add)

	assert.Equal(t, MsgSocialIncomplete, d.Add())

	d.SetPlatform("LinkedIn")
	d.SetURL("linkedin.com/in/jane")
	assert.Empty(t, d.Add())

	assert.Equal(t, []model.SocialMedia{{Platform: "LinkedIn", Url: "linkedin.com/in/jane"}}, c.list())
	assert.Equal(t, model.SocialMedia{}, d.Pending())
}
