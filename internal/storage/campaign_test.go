package storage

import (
	"testing"

	"clip-automator/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignLifecycle(t *testing.T) {
	openTestDB(t)

	c := &types.Campaign{
		Name:          "Agosto Fofocas",
		Influencer:    "canalfofoca",
		PlatformUrl:   "https://example.com/campaign/1",
		PayPer1kViews: 1.5,
		MinViews:      10000,
	}
	require.NoError(t, CreateCampaign(c))
	require.NotZero(t, c.Id)
	assert.Equal(t, types.CampaignStatusActive, c.Status)

	got, err := GetCampaign(c.Id)
	require.NoError(t, err)
	assert.Equal(t, "Agosto Fofocas", got.Name)

	got.PayPer1kViews = 2.0
	require.NoError(t, UpdateCampaign(got))

	require.NoError(t, ArchiveCampaign(c.Id))

	active, err := ListCampaigns(false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := ListCampaigns(true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, types.CampaignStatusArchived, all[0].Status)
	assert.Equal(t, 2.0, all[0].PayPer1kViews)
}

func TestAttachClipsToCampaign(t *testing.T) {
	openTestDB(t)

	c := &types.Campaign{Name: "c1"}
	require.NoError(t, CreateCampaign(c))

	require.NoError(t, SaveTask(&types.ClipTask{TaskId: "t1", Status: types.ClipTaskStatusCompleted}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "t1", Seq: 1}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "t1", Seq: 2}))
	require.NoError(t, SaveClipRecord(&types.ClipRecord{TaskRef: "other", Seq: 1}))

	affected, err := AttachClipsToCampaign("t1", c.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	attached, err := GetCampaign(c.Id)
	require.NoError(t, err)
	assert.Len(t, attached.Clips, 2)
}

func TestCampaignSummaryCounts(t *testing.T) {
	openTestDB(t)

	c := &types.Campaign{Name: "c2"}
	require.NoError(t, CreateCampaign(c))

	clip1 := &types.ClipRecord{TaskRef: "t1", CampaignId: c.Id, Seq: 1}
	clip2 := &types.ClipRecord{TaskRef: "t1", CampaignId: c.Id, Seq: 2}
	require.NoError(t, SaveClipRecord(clip1))
	require.NoError(t, SaveClipRecord(clip2))

	require.NoError(t, MarkClipSubmitted(clip1.Id))

	summary, err := GetCampaignSummary(c.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ClipCount)
	assert.Equal(t, int64(1), summary.SubmittedCount)

	submitted, err := GetClipRecord(clip1.Id)
	require.NoError(t, err)
	assert.True(t, submitted.Submitted)
	assert.NotZero(t, submitted.SubmittedAt)
}

func TestSetClipPostedLink(t *testing.T) {
	openTestDB(t)

	clip := &types.ClipRecord{TaskRef: "t1", Seq: 1}
	require.NoError(t, SaveClipRecord(clip))

	require.NoError(t, SetClipPostedLink(clip.Id, "tiktok", "https://tiktok.com/@x/video/1"))
	require.NoError(t, SetClipPostedLink(clip.Id, "kwai", "https://kwai.com/v/2"))

	got, err := GetClipRecord(clip.Id)
	require.NoError(t, err)
	assert.Equal(t, "https://tiktok.com/@x/video/1", got.PostedLinks["tiktok"])
	assert.Equal(t, "https://kwai.com/v/2", got.PostedLinks["kwai"])
}
