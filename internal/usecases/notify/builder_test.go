package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
)

func TestBuildMessage_NewMessage(t *testing.T) {
	msg := BuildMessage(domain.NewMessage{
		ChatID: "chat-1", SenderID: "user-a", SenderName: "Alice", Text: "hello", MessageID: "m-1",
	})

	assert.Equal(t, "Alice", msg.Title)
	assert.Equal(t, "hello", msg.Body)
	assert.Equal(t, map[string]string{
		"type":      "new_message",
		"chatId":    "chat-1",
		"senderId":  "user-a",
		"messageId": "m-1",
	}, msg.Data)
}

func TestBuildMessage_NewMessage_FallbackTitle(t *testing.T) {
	msg := BuildMessage(domain.NewMessage{ChatID: "chat-1", SenderID: "user-a", Text: "hello"})
	assert.Equal(t, "New message", msg.Title)
}

func TestBuildMessage_AnonymousActorIsSomeone(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.Event
		body string
	}{
		{"friend request", domain.FriendRequest{SenderID: "u"}, "Someone sent you a friend request"},
		{"friend accept", domain.FriendAccept{AcceptorID: "u"}, "Someone accepted your friend request"},
		{"new post", domain.NewPost{PostID: "p", UserID: "u"}, "Someone shared a new post"},
		{"post share", domain.PostShare{PostID: "p", ActorID: "u"}, "Someone shared your post"},
		{"comment like", domain.CommentLike{PostID: "p", CommentID: "c", ActorID: "u"}, "Someone liked your comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.body, BuildMessage(tt.ev).Body)
		})
	}
}

func TestBuildMessage_ReactionGlyphs(t *testing.T) {
	tests := []struct {
		reaction string
		glyph    string
	}{
		{"like", "👍"},
		{"love", "❤️"},
		{"haha", "😂"},
		{"wow", "😮"},
		{"sad", "😢"},
		{"angry", "😡"},
		{"unknown_reaction", "👍"}, // unknown falls back to like
		{"", "👍"},
	}

	for _, tt := range tests {
		t.Run("reaction_"+tt.reaction, func(t *testing.T) {
			msg := BuildMessage(domain.PostReaction{
				PostID: "p", ActorID: "u", ActorName: "Bob", ReactionType: tt.reaction,
			})
			assert.Equal(t, "Bob reacted "+tt.glyph+" to your post", msg.Body)
			assert.Equal(t, tt.reaction, msg.Data["reaction"])
		})
	}
}

func TestBuildMessage_QuotedCommentTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	msg := BuildMessage(domain.PostComment{
		PostID: "p", CommentID: "c", ActorID: "u", ActorName: "Bob", CommentText: long,
	})

	want := `Bob commented: "` + strings.Repeat("x", 50) + `..."`
	assert.Equal(t, want, msg.Body)
}

func TestBuildMessage_QuotedCommentAtLimitNotTruncated(t *testing.T) {
	exact := strings.Repeat("y", 50)
	msg := BuildMessage(domain.CommentReply{
		PostID: "p", CommentID: "c", ActorID: "u", ActorName: "Bob", ReplyText: exact,
	})

	assert.Equal(t, `Bob replied: "`+exact+`"`, msg.Body)
}

func TestBuildMessage_TruncationIsRuneAware(t *testing.T) {
	long := strings.Repeat("é", 60)
	msg := BuildMessage(domain.PostComment{
		PostID: "p", CommentID: "c", ActorID: "u", ActorName: "Bob", CommentText: long,
	})

	assert.Contains(t, msg.Body, strings.Repeat("é", 50)+"...")
	assert.NotContains(t, msg.Body, strings.Repeat("é", 51))
}

func TestBuildMessage_DirectMergesCustomData(t *testing.T) {
	msg := BuildMessage(domain.DirectSend{
		RecipientID: "user-b",
		Title:       "Maintenance",
		Body:        "Back at noon",
		Data:        map[string]string{"deeplink": "/status"},
	})

	assert.Equal(t, "Maintenance", msg.Title)
	assert.Equal(t, "direct", msg.Data["type"])
	assert.Equal(t, "/status", msg.Data["deeplink"])
}

func TestBuildMessage_MentionContext(t *testing.T) {
	post := BuildMessage(domain.Mention{RecipientID: "b", MentionerID: "a", MentionerName: "Alice", PostID: "p", Context: "post"})
	assert.Equal(t, "Alice mentioned you in a post", post.Body)
	assert.Equal(t, "p", post.Data["postId"])
	_, hasComment := post.Data["commentId"]
	assert.False(t, hasComment)

	comment := BuildMessage(domain.Mention{RecipientID: "b", MentionerID: "a", PostID: "p", CommentID: "c", Context: "comment"})
	assert.Equal(t, "Someone mentioned you in a comment", comment.Body)
	assert.Equal(t, "c", comment.Data["commentId"])
}

func TestBuildMessage_GroupInviteFallbackName(t *testing.T) {
	msg := BuildMessage(domain.GroupInvite{RecipientID: "b", GroupID: "g", InviterID: "a"})
	assert.Equal(t, "Someone invited you to a group", msg.Body)
}

func TestBuildMessage_EveryKindCarriesTypeDiscriminator(t *testing.T) {
	events := []domain.Event{
		domain.DirectSend{},
		domain.NewMessage{},
		domain.FriendRequest{},
		domain.FriendAccept{},
		domain.NewPost{},
		domain.PostComment{},
		domain.PostReaction{},
		domain.PostShare{},
		domain.CommentReply{},
		domain.CommentLike{},
		domain.GroupInvite{},
		domain.Mention{},
	}

	for _, ev := range events {
		t.Run(string(ev.Kind()), func(t *testing.T) {
			msg := BuildMessage(ev)
			assert.Equal(t, string(ev.Kind()), msg.Data["type"])
		})
	}
}
