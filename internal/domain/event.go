package domain

// EventKind discriminates the closed set of notification events the gateway
// relays. It doubles as the `type` field of the structured push payload and
// of the persisted record.
type EventKind string

const (
	KindDirect        EventKind = "direct"
	KindNewMessage    EventKind = "new_message"
	KindFriendRequest EventKind = "friend_request"
	KindFriendAccept  EventKind = "friend_request_accepted"
	KindNewPost       EventKind = "new_post"
	KindPostComment   EventKind = "post_comment"
	KindPostReaction  EventKind = "post_reaction"
	KindPostShare     EventKind = "post_share"
	KindCommentReply  EventKind = "comment_reply"
	KindCommentLike   EventKind = "comment_like"
	KindGroupInvite   EventKind = "group_invite"
	KindMention       EventKind = "mention"
)

// Event is the tagged variant over every notification-triggering application
// event. Events are transient: they are resolved, rendered and dispatched,
// never stored.
type Event interface {
	Kind() EventKind
}

type DirectSend struct {
	RecipientID string
	Title       string
	Body        string
	Data        map[string]string
}

type NewMessage struct {
	ChatID     string
	SenderID   string
	SenderName string
	Text       string
	MessageID  string
}

type FriendRequest struct {
	RecipientID string
	SenderID    string
	SenderName  string
}

type FriendAccept struct {
	RecipientID  string
	AcceptorID   string
	AcceptorName string
}

type NewPost struct {
	PostID   string
	UserID   string
	UserName string
}

type PostComment struct {
	PostID      string
	CommentID   string
	OwnerID     string
	ActorID     string
	ActorName   string
	CommentText string
}

type PostReaction struct {
	PostID       string
	OwnerID      string
	ActorID      string
	ActorName    string
	ReactionType string
}

type PostShare struct {
	PostID    string
	OwnerID   string
	ActorID   string
	ActorName string
}

type CommentReply struct {
	PostID    string
	CommentID string
	OwnerID   string
	ActorID   string
	ActorName string
	ReplyText string
}

type CommentLike struct {
	PostID    string
	CommentID string
	OwnerID   string
	ActorID   string
	ActorName string
}

type GroupInvite struct {
	RecipientID string
	GroupID     string
	InviterID   string
	GroupName   string
	InviterName string
}

type Mention struct {
	RecipientID   string
	MentionerID   string
	MentionerName string
	PostID        string
	CommentID     string
	Context       string // "post" or "comment"
}

func (DirectSend) Kind() EventKind    { return KindDirect }
func (NewMessage) Kind() EventKind    { return KindNewMessage }
func (FriendRequest) Kind() EventKind { return KindFriendRequest }
func (FriendAccept) Kind() EventKind  { return KindFriendAccept }
func (NewPost) Kind() EventKind       { return KindNewPost }
func (PostComment) Kind() EventKind   { return KindPostComment }
func (PostReaction) Kind() EventKind  { return KindPostReaction }
func (PostShare) Kind() EventKind     { return KindPostShare }
func (CommentReply) Kind() EventKind  { return KindCommentReply }
func (CommentLike) Kind() EventKind   { return KindCommentLike }
func (GroupInvite) Kind() EventKind   { return KindGroupInvite }
func (Mention) Kind() EventKind       { return KindMention }
