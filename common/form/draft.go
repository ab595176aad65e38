package form

import (
	"infinitech-web/model"
	"sync"
	"time"
)

const SocialDraftDelay = 500 * time.Millisecond

// SocialDraft holds a social media entry being typed. Once both platform and
// url are non-empty it commits itself after the delay; every edit restarts
// the wait.
type SocialDraft struct {
	mu         sync.Mutex
	platform   string
	url        string
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	commit     func(model.SocialMedia)
}

func NewSocialDraft(delay time.Duration, commit func(model.SocialMedia)) *SocialDraft {
	return &SocialDraft{delay: delay, commit: commit}
}

func (d *SocialDraft) SetPlatform(platform string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.platform = platform
	d.scheduleLocked()
}

func (d *SocialDraft) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.url = url
	d.scheduleLocked()
}

// Add commits the draft immediately. It returns the error text when the
// draft is incomplete.
func (d *SocialDraft) Add() string {
	d.mu.Lock()
	if d.platform == "" || d.url == "" {
		d.mu.Unlock()
		return MsgSocialIncomplete
	}
	entry := d.takeLocked()
	d.mu.Unlock()

	d.commit(entry)
	return ""
}

// Stop cancels a pending commit without clearing the draft.
func (d *SocialDraft) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *SocialDraft) Pending() model.SocialMedia {
	d.mu.Lock()
	defer d.mu.Unlock()

	return model.SocialMedia{Platform: d.platform, Url: d.url}
}

func (d *SocialDraft) scheduleLocked() {
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if d.platform == "" || d.url == "" {
		return
	}

	gen := d.generation
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.generation {
			d.mu.Unlock()
			return
		}
		entry := d.takeLocked()
		d.mu.Unlock()

		d.commit(entry)
	})
}

func (d *SocialDraft) takeLocked() model.SocialMedia {
	entry := model.SocialMedia{Platform: d.platform, Url: d.url}

	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.platform = ""
	d.url = ""

	return entry
}
