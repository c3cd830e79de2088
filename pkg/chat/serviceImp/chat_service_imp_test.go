package serviceImp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/chat/hub"
	"kisan/pkg/chat/repositoryImp"
	"kisan/pkg/chat/service"
	userRepoImp "kisan/pkg/user/repositoryImp"
)

type fixture struct {
	svc       *chatSvc
	hub       *hub.Hub
	anu, biju entities.User
	chinnamma entities.User
	clock     time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	users := userRepoImp.New(db)
	f := &fixture{hub: hub.New(), clock: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	for _, u := range []*entities.User{
		{Name: "Biju", Email: "biju@example.com", Role: entities.RoleFarmer},
		{Name: "Anu", Email: "anu@example.com", Role: entities.RoleFarmer},
		{Name: "Chinnamma", Email: "chinnamma@example.com", Role: entities.RoleFarmer},
	} {
		require.NoError(t, users.Create(context.Background(), u))
	}
	all, err := users.ListExcept(context.Background(), "")
	require.NoError(t, err)
	f.anu, f.biju, f.chinnamma = all[0], all[1], all[2]

	f.svc = NewChatService(repositoryImp.New(db), users, users, f.hub).(*chatSvc)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func (f *fixture) send(t *testing.T, from, to entities.User, content string) *entities.PopulatedMessage {
	t.Helper()
	m, err := f.svc.Send(context.Background(), from.ID, service.SendInput{ReceiverID: to.ID, Content: content})
	require.NoError(t, err)
	return m
}

func TestSendValidates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cases := []struct {
		in   service.SendInput
		kind apperr.Kind
	}{
		{service.SendInput{ReceiverID: f.biju.ID, Content: "   "}, apperr.KindValidation},
		{service.SendInput{Content: "hello"}, apperr.KindValidation},
		{service.SendInput{ReceiverID: f.anu.ID, Content: "note to self"}, apperr.KindValidation},
		{service.SendInput{ReceiverID: f.biju.ID, Content: strings.Repeat("a", MaxContent+1)}, apperr.KindValidation},
		{service.SendInput{ReceiverID: "ghost", Content: "hello"}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		_, err := f.svc.Send(ctx, f.anu.ID, tc.in)
		assert.Equal(t, tc.kind, apperr.KindOf(err), "%+v", tc.in)
	}
}

func TestSendPopulatesAndPublishes(t *testing.T) {
	f := setup(t)
	sub := f.hub.Subscribe(f.biju.ID)
	defer sub.Close()

	m := f.send(t, f.anu, f.biju, "  Is the rain coming?  ")
	assert.Equal(t, "Is the rain coming?", m.Content)
	assert.Equal(t, entities.Participant{ID: f.anu.ID, Name: "Anu", Email: "anu@example.com"}, m.Sender)
	assert.Equal(t, "Biju", m.Receiver.Name)
	assert.False(t, m.Read)

	ev := <-sub.C
	assert.Equal(t, hub.EventMessage, ev.Type)
	assert.Equal(t, m.ID, ev.Message.ID)
}

func TestThreadOrdersAndMarksRead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.send(t, f.anu, f.biju, "one")
	f.send(t, f.biju, f.anu, "two")
	f.send(t, f.anu, f.biju, "three")
	f.send(t, f.chinnamma, f.biju, "elsewhere")

	n, err := f.svc.Unread(ctx, f.biju.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	anuSub := f.hub.Subscribe(f.anu.ID)
	defer anuSub.Close()

	thread, err := f.svc.Thread(ctx, f.biju.ID, f.anu.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{thread[0].Content, thread[1].Content, thread[2].Content})
	assert.True(t, thread[0].Read)

	n, err = f.svc.Unread(ctx, f.biju.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only the other thread stays unread")

	ev := <-anuSub.C
	assert.Equal(t, hub.EventRead, ev.Type)
	assert.Equal(t, f.biju.ID, ev.ReaderID)

	// Fetching again is a no-op and publishes nothing.
	_, err = f.svc.Thread(ctx, f.biju.ID, f.anu.ID)
	require.NoError(t, err)
	assert.Empty(t, anuSub.C)

	// The sender reading its own thread leaves the receiver's flags alone.
	f.send(t, f.anu, f.biju, "four")
	_, err = f.svc.Thread(ctx, f.anu.ID, f.biju.ID)
	require.NoError(t, err)
	n, err = f.svc.Unread(ctx, f.biju.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.svc.Thread(ctx, f.biju.ID, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUsersWithPresence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.svc.SetStatus(ctx, f.biju.ID, true))

	users, err := f.svc.Users(ctx, f.anu.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Biju", users[0].Name)
	assert.True(t, users[0].IsOnline)
	assert.False(t, users[1].IsOnline)
	assert.Nil(t, users[1].LastSeen)

	// A stale online flag reads as offline.
	f.clock = f.clock.Add(entities.PresenceTimeout + time.Minute)
	users, err = f.svc.Users(ctx, f.anu.ID)
	require.NoError(t, err)
	assert.False(t, users[0].IsOnline)
}

func TestConversations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.send(t, f.biju, f.anu, "b1")
	f.send(t, f.chinnamma, f.anu, "c1")
	f.send(t, f.biju, f.anu, "b2")
	f.send(t, f.anu, f.chinnamma, "reply")

	convs, err := f.svc.Conversations(ctx, f.anu.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "Chinnamma", convs[0].User.Name)
	assert.Equal(t, "reply", convs[0].LastMessage.Content)
	assert.Equal(t, 1, convs[0].Unread)
	assert.Equal(t, "b2", convs[1].LastMessage.Content)
	assert.Equal(t, 2, convs[1].Unread)
}

func TestConnectDisconnectPresence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	s1, err := f.svc.Connect(ctx, f.biju.ID)
	require.NoError(t, err)
	s2, err := f.svc.Connect(ctx, f.biju.ID)
	require.NoError(t, err)

	online := func() bool {
		users, err := f.svc.Users(ctx, f.anu.ID)
		require.NoError(t, err)
		return users[0].IsOnline
	}
	assert.True(t, online())
	f.svc.Disconnect(ctx, f.biju.ID, s1)
	assert.True(t, online(), "second tab still open")
	f.svc.Disconnect(ctx, f.biju.ID, s2)
	assert.False(t, online())
}

func TestPurgeUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.send(t, f.anu, f.biju, "hello")
	f.send(t, f.chinnamma, f.biju, "hi")

	require.NoError(t, f.svc.PurgeUser(ctx, f.anu.ID))
	convs, err := f.svc.Conversations(ctx, f.biju.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "Chinnamma", convs[0].User.Name)
}
