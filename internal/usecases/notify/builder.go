package notify

import (
	"fmt"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/push"
)

// quoteLimit bounds how much quoted comment/reply text is carried into the
// alert body.
const quoteLimit = 50

var reactionGlyphs = map[string]string{
	"like":  "👍",
	"love":  "❤️",
	"haha":  "😂",
	"wow":   "😮",
	"sad":   "😢",
	"angry": "😡",
}

// BuildMessage renders the channel-agnostic alert for an event. The switch
// is exhaustive over the closed event set; the human-visible title/body must
// stand alone (a terminated app renders only those), while the Data payload
// carries the type discriminator and the identifiers a foreground client
// navigates by.
func BuildMessage(ev domain.Event) push.Message {
	switch e := ev.(type) {
	case domain.DirectSend:
		data := map[string]string{"type": string(domain.KindDirect)}
		for k, v := range e.Data {
			data[k] = v
		}
		return push.Message{Title: e.Title, Body: e.Body, Data: data}

	case domain.NewMessage:
		title := e.SenderName
		if title == "" {
			title = "New message"
		}
		return push.Message{
			Title: title,
			Body:  e.Text,
			Data: map[string]string{
				"type":      string(domain.KindNewMessage),
				"chatId":    e.ChatID,
				"senderId":  e.SenderID,
				"messageId": e.MessageID,
			},
		}

	case domain.FriendRequest:
		return push.Message{
			Title: "Friend request",
			Body:  fmt.Sprintf("%s sent you a friend request", nameOrSomeone(e.SenderName)),
			Data: map[string]string{
				"type":     string(domain.KindFriendRequest),
				"senderId": e.SenderID,
			},
		}

	case domain.FriendAccept:
		return push.Message{
			Title: "Friend request accepted",
			Body:  fmt.Sprintf("%s accepted your friend request", nameOrSomeone(e.AcceptorName)),
			Data: map[string]string{
				"type":       string(domain.KindFriendAccept),
				"acceptorId": e.AcceptorID,
			},
		}

	case domain.NewPost:
		return push.Message{
			Title: "New post",
			Body:  fmt.Sprintf("%s shared a new post", nameOrSomeone(e.UserName)),
			Data: map[string]string{
				"type":   string(domain.KindNewPost),
				"postId": e.PostID,
				"userId": e.UserID,
			},
		}

	case domain.PostComment:
		return push.Message{
			Title: "New comment",
			Body:  fmt.Sprintf("%s commented: %q", nameOrSomeone(e.ActorName), truncate(e.CommentText, quoteLimit)),
			Data: map[string]string{
				"type":      string(domain.KindPostComment),
				"postId":    e.PostID,
				"commentId": e.CommentID,
				"actorId":   e.ActorID,
			},
		}

	case domain.PostReaction:
		return push.Message{
			Title: "New reaction",
			Body:  fmt.Sprintf("%s reacted %s to your post", nameOrSomeone(e.ActorName), reactionGlyph(e.ReactionType)),
			Data: map[string]string{
				"type":     string(domain.KindPostReaction),
				"postId":   e.PostID,
				"actorId":  e.ActorID,
				"reaction": e.ReactionType,
			},
		}

	case domain.PostShare:
		return push.Message{
			Title: "Post shared",
			Body:  fmt.Sprintf("%s shared your post", nameOrSomeone(e.ActorName)),
			Data: map[string]string{
				"type":    string(domain.KindPostShare),
				"postId":  e.PostID,
				"actorId": e.ActorID,
			},
		}

	case domain.CommentReply:
		return push.Message{
			Title: "New reply",
			Body:  fmt.Sprintf("%s replied: %q", nameOrSomeone(e.ActorName), truncate(e.ReplyText, quoteLimit)),
			Data: map[string]string{
				"type":      string(domain.KindCommentReply),
				"postId":    e.PostID,
				"commentId": e.CommentID,
				"actorId":   e.ActorID,
			},
		}

	case domain.CommentLike:
		return push.Message{
			Title: "Comment liked",
			Body:  fmt.Sprintf("%s liked your comment", nameOrSomeone(e.ActorName)),
			Data: map[string]string{
				"type":      string(domain.KindCommentLike),
				"postId":    e.PostID,
				"commentId": e.CommentID,
				"actorId":   e.ActorID,
			},
		}

	case domain.GroupInvite:
		group := e.GroupName
		if group == "" {
			group = "a group"
		}
		return push.Message{
			Title: "Group invite",
			Body:  fmt.Sprintf("%s invited you to %s", nameOrSomeone(e.InviterName), group),
			Data: map[string]string{
				"type":      string(domain.KindGroupInvite),
				"groupId":   e.GroupID,
				"inviterId": e.InviterID,
			},
		}

	case domain.Mention:
		place := "a post"
		if e.Context == "comment" {
			place = "a comment"
		}
		data := map[string]string{
			"type":        string(domain.KindMention),
			"mentionerId": e.MentionerID,
		}
		if e.PostID != "" {
			data["postId"] = e.PostID
		}
		if e.CommentID != "" {
			data["commentId"] = e.CommentID
		}
		return push.Message{
			Title: "You were mentioned",
			Body:  fmt.Sprintf("%s mentioned you in %s", nameOrSomeone(e.MentionerName), place),
			Data:  data,
		}

	default:
		// Unreachable while the event set stays closed.
		return push.Message{Title: "Notification", Data: map[string]string{"type": string(ev.Kind())}}
	}
}

func reactionGlyph(reactionType string) string {
	if glyph, ok := reactionGlyphs[reactionType]; ok {
		return glyph
	}
	return reactionGlyphs["like"]
}

func nameOrSomeone(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
