package telegram

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

func TestLastPageIndex(t *testing.T) {
	cases := []struct {
		n, size, want int
	}{
		{0, 5, 0},
		{1, 5, 0},
		{5, 5, 0},
		{6, 5, 1},
		{10, 5, 1},
		{11, 5, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lastPageIndex(tc.n, tc.size), "n=%d size=%d", tc.n, tc.size)
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		n, page, size      int
		wantStart, wantEnd int
	}{
		{12, 0, 5, 0, 5},
		{12, 1, 5, 5, 10},
		{12, 2, 5, 10, 12},
		{12, 3, 5, 12, 12}, // past the end: empty window, not an error
		{0, 0, 5, 0, 0},
		{0, 7, 5, 0, 0},
	}
	for _, tc := range cases {
		start, end := pageWindow(tc.n, tc.page, tc.size)
		assert.Equal(t, tc.wantStart, start, "n=%d page=%d", tc.n, tc.page)
		assert.Equal(t, tc.wantEnd, end, "n=%d page=%d", tc.n, tc.page)
	}
}

type fakeUserLister struct {
	users []*storage.User
	err   error
}

func (f fakeUserLister) GetAllUsers(ctx context.Context) ([]*storage.User, error) {
	return f.users, f.err
}

func TestBroadcastToAllCountsFailures(t *testing.T) {
	lister := fakeUserLister{users: []*storage.User{
		{UserID: 1}, {UserID: 2}, {UserID: 3},
	}}

	var delivered []int64
	deliver := func(chatID int64, text string) error {
		if chatID == 2 {
			return errors.New("blocked the bot")
		}
		delivered = append(delivered, chatID)
		return nil
	}

	sent, total, err := broadcastToAll(context.Background(), lister, deliver, "привет")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{1, 3}, delivered, "one failure must not stop the loop")
}

func TestBroadcastToAllListerError(t *testing.T) {
	lister := fakeUserLister{err: errors.New("db gone")}

	_, _, err := broadcastToAll(context.Background(), lister, func(int64, string) error {
		t.Fatal("deliver must not be called")
		return nil
	}, "привет")
	assert.Error(t, err)
}

func TestBroadcastToAllNoUsers(t *testing.T) {
	sent, total, err := broadcastToAll(context.Background(), fakeUserLister{}, func(int64, string) error {
		return nil
	}, "привет")
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, total)
}
