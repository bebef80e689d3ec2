//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playkaro/uiprobe/pkg/suite"
)

func TestChecks_HealthySite(t *testing.T) {
	dir := t.TempDir()
	results := newRunner(t, siteSrv.URL, dir).Run(context.Background(), suite.Checks())
	require.Len(t, results, len(suite.Checks()))

	for _, r := range results {
		assert.Equal(t, suite.StatusPass, r.Status, "%s: %s", r.Name, r.Message)
		assert.Nil(t, r.Artifacts, r.Name)
	}
	assert.False(t, suite.Failed(results), describe(results))
}

func TestChecks_BrokenSite(t *testing.T) {
	dir := t.TempDir()
	results := newRunner(t, siteSrv.URL+"/broken", dir).Run(context.Background(), suite.Checks())
	byName := resultsByName(results)

	watch := byName["watch_page_shows_player"]
	require.Equal(t, suite.StatusFail, watch.Status, describe(results))
	assert.Contains(t, watch.Message, "expected a watch page url")
	require.NotNil(t, watch.Artifacts)
	assert.FileExists(t, watch.Artifacts.PNG)
	assert.FileExists(t, watch.Artifacts.HTML)

	assert.Equal(t, suite.StatusPass, byName["click_first_video_card_navigates"].Status, describe(results))
	for _, name := range []string{
		"home_page_loads_and_has_heading",
		"logo_and_sign_in_button_present",
		"search_filters_video_cards",
	} {
		assert.Equal(t, suite.StatusSkip, byName[name].Status, "%s: %s", name, byName[name].Message)
	}
	assert.Equal(t, "No H1 found - skipping heading assertion", byName["home_page_loads_and_has_heading"].Message)
	assert.True(t, suite.Failed(results))
}

// a hidden h1 is present in the dom, reading its text must not wait for visibility.
func TestChecks_HiddenHeadingReturnsInTime(t *testing.T) {
	checks, err := suite.Select(suite.Checks(), []string{"home_page_loads_and_has_heading"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	results := newRunner(t, siteSrv.URL+"/hidden", t.TempDir()).Run(ctx, checks)
	require.Len(t, results, 1)
	require.NoError(t, ctx.Err(), "heading check blocked on a hidden h1")

	// backends disagree on innerText of display:none nodes, pass and skip are both fine
	assert.NotEqual(t, suite.StatusFail, results[0].Status, results[0].Message)
	assert.Less(t, results[0].Duration, 20*time.Second)
}

func TestChecks_SelectedOnly(t *testing.T) {
	checks, err := suite.Select(suite.Checks(), []string{"watch_page_shows_player"})
	require.NoError(t, err)

	results := newRunner(t, siteSrv.URL, t.TempDir()).Run(context.Background(), checks)
	require.Len(t, results, 1)
	assert.Equal(t, suite.StatusPass, results[0].Status, results[0].Message)
}
