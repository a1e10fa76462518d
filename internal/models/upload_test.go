package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchResult_Summary(t *testing.T) {
	t.Run("all succeeded", func(t *testing.T) {
		r := &BatchResult{
			Tasks: []UploadTask{
				{File: SelectedFile{Name: "a.pbit"}, Status: StatusSucceeded},
				{File: SelectedFile{Name: "b.pbit"}, Status: StatusSucceeded},
			},
			SucceededCount: 2,
		}
		assert.Empty(t, r.FailedNames())
		assert.Equal(t, "2 file(s) uploaded successfully", r.Summary())
	})

	t.Run("failures listed in order", func(t *testing.T) {
		r := &BatchResult{
			Tasks: []UploadTask{
				{File: SelectedFile{Name: "a.pbit"}, Status: StatusFailed},
				{File: SelectedFile{Name: "b.pbit"}, Status: StatusSucceeded},
				{File: SelectedFile{Name: "c.pbit"}, Status: StatusCancelled},
			},
			SucceededCount: 1,
			FailedCount:    1,
			CancelledCount: 1,
		}
		assert.Equal(t, []string{"a.pbit", "c.pbit"}, r.FailedNames())
		assert.Equal(t, "some files failed: a.pbit, c.pbit", r.Summary())
	})
}

func TestUploadTask_Done(t *testing.T) {
	assert.False(t, UploadTask{Status: StatusPending}.Done())
	assert.False(t, UploadTask{Status: StatusInProgress}.Done())
	assert.True(t, UploadTask{Status: StatusSucceeded}.Done())
	assert.True(t, UploadTask{Status: StatusFailed}.Done())
	assert.True(t, UploadTask{Status: StatusCancelled}.Done())
}
