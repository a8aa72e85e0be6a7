// File: internal/browser/alerts_test.go
package browser

import (
	"context"
	"testing"

	"github.com/chromedp/cdproto/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertOperationsWithoutDialog(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.AcceptAlert(ctx), ErrNoDialog)
	assert.ErrorIs(t, s.DismissAlert(ctx), ErrNoDialog)
	assert.ErrorIs(t, s.SendTextToAlert(ctx, "text"), ErrNoDialog)

	_, err := s.AlertText(ctx)
	assert.ErrorIs(t, err, ErrNoDialog)
}

func TestAlertTextReadsPendingDialogWithoutConsuming(t *testing.T) {
	s := newTestSession(t)
	s.dialog = &pendingDialog{kind: page.DialogTypeAlert, message: "saved successfully"}

	text, err := s.AlertText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saved successfully", text)

	// Reading the message must leave the dialog pending.
	text, err = s.AlertText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saved successfully", text)
}

func TestSendTextToAlertRequiresPrompt(t *testing.T) {
	s := newTestSession(t)
	s.dialog = &pendingDialog{kind: page.DialogTypeConfirm, message: "are you sure?"}

	err := s.SendTextToAlert(context.Background(), "yes")
	assert.ErrorIs(t, err, ErrNoDialog)
	assert.Empty(t, s.promptText)
}

func TestSendTextToAlertStagesPromptText(t *testing.T) {
	s := newTestSession(t)
	s.dialog = &pendingDialog{kind: page.DialogTypePrompt, message: "enter name", defaultPrompt: "anon"}

	require.NoError(t, s.SendTextToAlert(context.Background(), "admin"))
	assert.Equal(t, "admin", s.promptText)
}

func TestTakeDialogConsumesDialogAndText(t *testing.T) {
	s := newTestSession(t)
	s.dialog = &pendingDialog{kind: page.DialogTypePrompt, message: "enter name"}
	s.promptText = "admin"

	d, text, err := s.takeDialog()
	require.NoError(t, err)
	assert.Equal(t, "enter name", d.message)
	assert.Equal(t, "admin", text)

	assert.Nil(t, s.dialog)
	assert.Empty(t, s.promptText)

	_, _, err = s.takeDialog()
	assert.ErrorIs(t, err, ErrNoDialog)
}
